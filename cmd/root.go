package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raditia/gerai/internal/constants"
	"github.com/raditia/gerai/internal/log"
)

// Execute parses the subcommand and runs the matching service until an
// interrupt arrives.
func Execute() {
	logger := log.InitLogger("/var/log/gerai.log").
		With().
		Str(log.KeyAppName, constants.AppMain).
		Str(log.KeyTag, "main Execute").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "gerai",
		Short: "Multi-tenant storefront services",
	}
	commands := []*cobra.Command{
		{
			Use:   "storefront",
			Short: "Run the customer-facing storefront service",
			Run: func(cmd *cobra.Command, args []string) {
				runStorefrontService(cmd.Context())
			},
		},
		{
			Use:   "seller",
			Short: "Run the seller service",
			Run: func(cmd *cobra.Command, args []string) {
				runSellerService(cmd.Context())
			},
		},
		{
			Use:   "admin",
			Short: "Run the admin console service",
			Run: func(cmd *cobra.Command, args []string) {
				runAdminService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)

	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
