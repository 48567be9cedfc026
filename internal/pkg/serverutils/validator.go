package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"weaponforge-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRequest runs struct validation and turns the first failure into a
// validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperror.Validation(err.Error())
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return apperror.Validation(fmt.Sprintf("%s is required", fe.Field()))
	default:
		return apperror.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
