package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgeExpiredQrTokensCommandIsNotConstructed = errors.New(
	"PurgeExpiredQrTokensCommand must be created via NewPurgeExpiredQrTokensCommand constructor",
)

// PurgeExpiredQrTokensCommand removes tokens that expired more than
// retention ago. Validity is always decided at verify time; this is storage
// housekeeping.
type PurgeExpiredQrTokensCommand struct {
	retention time.Duration
	guard     guard.ConstructorGuard
}

func NewPurgeExpiredQrTokensCommand(retention time.Duration) (PurgeExpiredQrTokensCommand, error) {
	if retention < 0 {
		return PurgeExpiredQrTokensCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is negative", retention))
	}
	return PurgeExpiredQrTokensCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeExpiredQrTokensCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredQrTokensCommandIsNotConstructed)
}

func (c PurgeExpiredQrTokensCommand) Retention() time.Duration {
	return c.retention
}
