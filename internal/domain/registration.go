package domain

// Field names one input of the registration form.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword}

// MinPasswordLength is the shortest password the form accepts.
const MinPasswordLength = 6

// RegistrationInput is the profile data collected by the form.
type RegistrationInput struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required"`
}
