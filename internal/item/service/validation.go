package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
)

type itemRules struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func validateItem(v *validator.Validate, input ItemInput) commonerrors.ValidationErrors {
	err := v.Struct(itemRules{Name: input.Name, Description: input.Description})
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return commonerrors.ValidationErrors{"is invalid"}
	}

	var messages commonerrors.ValidationErrors
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s can't be blank", fe.StructField()))
	}
	return messages
}
