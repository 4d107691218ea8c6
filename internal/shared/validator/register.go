package validator

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// New returns a standalone validator with the common validations registered.
// Domain code that validates outside of gin binding should use this.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := register(v); err != nil {
		// registration only fails on an empty tag or nil func
		panic(err)
	}
	return v
}

// RegisterAll registers all common validators on the gin binding engine
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	if err := register(v); err != nil {
		return err
	}

	slog.Info("공통 Validator 등록 완료", "validators", CalendarDateTag)
	return nil
}

func register(v *validator.Validate) error {
	if err := v.RegisterValidation(CalendarDateTag, ValidateCalendarDate); err != nil {
		return fmt.Errorf("%s validator 등록 실패: %w", CalendarDateTag, err)
	}
	return nil
}
