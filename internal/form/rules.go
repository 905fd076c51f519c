package form

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/signup-flow/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldByStructName = map[string]domain.Field{
	"FirstName":       domain.FieldFirstName,
	"LastName":        domain.FieldLastName,
	"Email":           domain.FieldEmail,
	"Password":        domain.FieldPassword,
	"ConfirmPassword": domain.FieldConfirmPassword,
}

var fieldLabels = map[domain.Field]string{
	domain.FieldFirstName:       "First name",
	domain.FieldLastName:        "Last name",
	domain.FieldEmail:           "Email address",
	domain.FieldPassword:        "Password",
	domain.FieldConfirmPassword: "Password confirmation",
}

// checkRules reports the first failing rule in form order, like a browser's required/minLength checks.
func checkRules(input domain.RegistrationInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: "Please check the form and try again."}
	}

	failed := make(map[domain.Field]validator.FieldError, len(verrs))
	for _, fe := range verrs {
		failed[fieldByStructName[fe.StructField()]] = fe
	}
	for _, field := range domain.Fields {
		if fe, ok := failed[field]; ok {
			return &ValidationError{Field: field, Reason: describe(field, fe.Tag())}
		}
	}
	return &ValidationError{Reason: "Please check the form and try again."}
}

func describe(field domain.Field, tag string) string {
	label := fieldLabels[field]
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %d characters.", label, domain.MinPasswordLength)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
