package status

import (
	"fmt"

	commonErrors "github.com/raditia/gerai/internal/errors"
)

const (
	Pending  = "pending"
	Approved = "approved"
	Rejected = "rejected"
)

// transitions lists the legal moves of the seller verification flow. An
// approved shop never moves again; a rejected one may resubmit.
var transitions = map[string][]string{
	Pending:  {Approved, Rejected},
	Rejected: {Pending},
}

func Validate(from string, to string) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf(
		"cannot move shop from status=%s to status=%s: %w",
		from,
		to,
		commonErrors.ErrInvalidTransition,
	)
}
