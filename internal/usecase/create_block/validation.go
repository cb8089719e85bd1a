package create_block

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return time.Time{}, "", ErrInvalidInput
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid time %q: %v", ErrInvalidInput, req.Time, err)
	}

	return date, t, nil
}
