package usecase

import (
	"fmt"
	"strings"

	"seci_service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// MaxPageSize caps the size argument of paginated queries.
const MaxPageSize = 100

var validate = validator.New()

// validateStruct runs the struct's validate tags and reports failures as
// domain.ErrValidation.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(domain.ErrValidation, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s length must be %s %s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.Wrap(domain.ErrValidation, strings.Join(msgs, "; "))
}

func validatePage(page, size int) error {
	if page < 0 {
		return errors.Wrapf(domain.ErrValidation, "page must not be negative, got %d", page)
	}
	if size <= 0 {
		return errors.Wrapf(domain.ErrValidation, "size must be positive, got %d", size)
	}
	if size > MaxPageSize {
		return errors.Wrapf(domain.ErrValidation, "size must not exceed %d, got %d", MaxPageSize, size)
	}
	return nil
}
