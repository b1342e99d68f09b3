package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var halfHourRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):(00|30)$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// "halfhour" matches HH:MM on a 30-minute boundary, the granularity of
	// the event schedule grid.
	_ = v.RegisterValidation("halfhour", func(fl validator.FieldLevel) bool {
		return halfHourRe.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
