package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidConfig is returned when thresholds or the interval are out of range.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

type limits struct {
	LowThreshold      int           `validate:"gte=0,lte=100"`
	CriticalThreshold int           `validate:"gte=0,lte=100,ltefield=LowThreshold"`
	CheckInterval     time.Duration `validate:"gte=1s"`
}

// Validate checks 0 <= critical <= low <= 100 and a check interval of at
// least one second.
func Validate(c Config) error {
	if c == nil {
		return pkgerrors.Wrap(ErrInvalidConfig, "config is nil")
	}

	err := validate.Struct(limits{
		LowThreshold:      c.LowThreshold(),
		CriticalThreshold: c.CriticalThreshold(),
		CheckInterval:     c.CheckInterval(),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pkgerrors.Wrap(err, "failed to validate config")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return pkgerrors.Wrap(ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "ltefield":
		return fmt.Sprintf("%s (%v) must not be greater than %s", fe.Field(), fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s (%v) must be at least %s", fe.Field(), fe.Value(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s (%v) must be at most %s", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s (%v) failed on %s", fe.Field(), fe.Value(), fe.Tag())
	}
}
