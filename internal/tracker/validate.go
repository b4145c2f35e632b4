package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/pkg/model"
)

// newValidator reports field errors under their JSON names and knows the
// tracker's own value types.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return model.Status(fl.Field().String()).Valid()
	})
	v.RegisterValidation("commenttype", func(fl validator.FieldLevel) bool {
		return model.CommentType(fl.Field().String()).IsUserType()
	})
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, ok := dates.Parse(fl.Field().String())
		return ok
	})
	return v
}

// check validates req and converts failures to a VALIDATION_ERROR.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewInternalError(err)
	}
	details := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, model.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return model.NewValidationError("invalid request", details...)
}

// fieldPath drops the struct name from the namespace: "NewEntry.tasks[0].report_type" -> "tasks[0].report_type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "status":
		return fmt.Sprintf("unknown status %q", fe.Value())
	case "commenttype":
		return fmt.Sprintf("unknown comment type %q", fe.Value())
	case "date":
		return "must be a date such as 12/31/2024 or 2024-12-31"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
