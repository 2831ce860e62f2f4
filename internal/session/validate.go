package session

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Registration is the sign-up form. Role is empty for a plain user.
// ConfirmPassword precedes Password so a mismatch is reported before length.
type Registration struct {
	Email           string `validate:"required,email"`
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Password        string `validate:"required,min=6"`
	Role            string `validate:"omitempty,oneof=User Teacher"`
}

// PasswordReset is the reset-password form.
type PasswordReset struct {
	Token           string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Password        string `validate:"required,min=6"`
}

var fieldLabels = map[string]string{
	"Email":     "Email",
	"FirstName": "First name",
	"LastName":  "Last name",
	"Password":  "Password",
	"Token":     "Reset token",
}

// validateInput runs struct validation and reports the first failure as a
// display message wrapping ErrValidation.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("session.validate: %w", err)
	}
	return &Error{Message: fieldMessage(verrs[0]), Err: ErrValidation}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "eqfield":
		return "Passwords do not match"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldLabels[fe.Field()], fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "oneof":
		return "Invalid role"
	case "required":
		if fe.Field() == "Token" {
			return "Invalid or missing reset token"
		}
		return fieldLabels[fe.Field()] + " is required"
	}
	return fe.Error()
}
