package validator

import (
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"github.com/go-playground/validator/v10"
)

// CalendarDateTag validates a YYYY-MM-DD string that names a real calendar day.
const CalendarDateTag = "calendar_date"

// ValidateCalendarDate rejects other separators, missing zero padding and impossible
// days such as 2023-02-30.
func ValidateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.DateLayout, fl.Field().String())
	return err == nil
}
