package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mishagordeev/workouts/internal/apperror"
	"github.com/mishagordeev/workouts/internal/model"
)

// Client-facing messages. The create message does not mention sets; existing
// clients match on it verbatim.
const (
	MsgDateRequired         = "date parameter required (YYYY-MM-DD)"
	MsgCreateFieldsRequired = "date, name, weight, reps are required"
	MsgUpdateFieldsRequired = "name, weight, reps, sets are required"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateDate checks the date query parameter of the list operation.
// Only presence is checked, not the YYYY-MM-DD format.
func ValidateDate(date string) error {
	if date == "" {
		return apperror.InvalidRequest(MsgDateRequired)
	}
	return nil
}

// ValidateCreateEntry returns an InvalidRequest error when any field is missing
func ValidateCreateEntry(req *model.CreateEntryRequest) error {
	if err := validate.Struct(req); err != nil {
		return invalid(MsgCreateFieldsRequired, err)
	}
	return nil
}

// ValidateUpdateEntry returns an InvalidRequest error when any field is missing
func ValidateUpdateEntry(req *model.UpdateEntryRequest) error {
	if err := validate.Struct(req); err != nil {
		return invalid(MsgUpdateFieldsRequired, err)
	}
	return nil
}

// MissingFields lists the JSON names of the fields that failed validation
func MissingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	fields := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, e.Field())
	}
	return fields
}

func invalid(message string, cause error) error {
	appErr := apperror.InvalidRequest(message)
	appErr.Err = cause
	return appErr
}
