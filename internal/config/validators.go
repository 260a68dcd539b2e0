package config

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validateExclusive checks that two fields are mutually exclusive.
// Returns false if both the tagged field and the parameter field are set.
func validateExclusive(fl validator.FieldLevel) bool {
	otherFieldName := fl.Param()
	field := fl.Field()
	otherField := fl.Parent().FieldByName(otherFieldName)

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return !(field.String() != "" && otherField.String() != "")
	}

	return true
}
