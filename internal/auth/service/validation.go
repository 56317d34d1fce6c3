package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rakhimovb/staylist/internal/common/constants"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
)

type signupRules struct {
	Email                string `validate:"required,email"`
	Password             string `validate:"required,min=6,max=72"`
	PasswordConfirmation string `validate:"eqfield=Password"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateSignup collects every violation and returns the full message set,
// phrased the way the API reports them to clients.
func validateSignup(v *validator.Validate, input SignupInput) commonerrors.ValidationErrors {
	rules := signupRules{
		Email:                input.Email,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
	}

	err := v.Struct(rules)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return commonerrors.ValidationErrors{"is invalid"}
	}

	var messages commonerrors.ValidationErrors
	for _, fe := range fieldErrs {
		messages = append(messages, signupMessage(fe))
	}
	return messages
}

func signupMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Email":
		if fe.Tag() == "required" {
			return "Email can't be blank"
		}
		return "Email is invalid"
	case "Password":
		switch fe.Tag() {
		case "required":
			return "Password can't be blank"
		case "min":
			return fmt.Sprintf("Password is too short (minimum is %d characters)", constants.PasswordMinLength)
		case "max":
			return fmt.Sprintf("Password is too long (maximum is %d characters)", constants.PasswordMaxLength)
		}
	case "PasswordConfirmation":
		return "Password confirmation doesn't match Password"
	}
	return fmt.Sprintf("%s is invalid", fe.StructField())
}
