package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/raditia/gerai/internal/admin/otel"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
)

// ExportProducts writes the whole catalog as an xlsx workbook to w.
func (svc *AdminService) ExportProducts(c context.Context, w io.Writer) error {
	c, span := otel.Tracer.Start(c, "AdminService ExportProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService ExportProducts").
		Str(log.KeyProcess, "exporting products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c, repository.FindProductsParams{})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("found %d products", len(products))

	file, err := buildProductSheet(products)
	if err != nil {
		err = fmt.Errorf("failed building product sheet with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err := file.Write(w); err != nil {
		err = fmt.Errorf("failed writing product sheet with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("exported products")

	return nil
}

func buildProductSheet(products []repository.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Shop ID", "Category ID", "Name", "Description", "Price", "Image URL", "Created At"} {
		header.AddCell().Value = title
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().Value = p.ID.String()
		row.AddCell().Value = p.ShopID.String()
		categoryId := ""
		if p.CategoryID.Valid {
			categoryId = p.CategoryID.UUID.String()
		}
		row.AddCell().Value = categoryId
		row.AddCell().Value = p.Name
		row.AddCell().Value = p.Description
		row.AddCell().Value = decimal.NewFromBigInt(p.Price.Int, p.Price.Exp).String()
		row.AddCell().Value = p.ImageUrl
		row.AddCell().Value = p.CreatedAt.Time.Format("2006-01-02 15:04:05")
	}
	return file, nil
}
