package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

var (
	creatureIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	referralCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{4,16}$`)
	catalogIDPattern    = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("creatureid", matchPattern(creatureIDPattern))
	_ = v.RegisterValidation("refcode", matchPattern(referralCodePattern))
	_ = v.RegisterValidation("catalogid", matchPattern(catalogIDPattern))

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "creatureid":
			errs[field] = "Invalid creature id"
		case "refcode":
			errs[field] = "Invalid referral code"
		case "catalogid":
			errs[field] = "Invalid item id"
		case "nefield":
			errs[field] = fmt.Sprintf("Must differ from %s", strings.ToLower(e.Param()))
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		// empty values are left to the required tag
		if s == "" {
			return true
		}
		return re.MatchString(s)
	}
}
