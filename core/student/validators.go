package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studenthub/core"
)

var (
	classTag  = "class"
	classText = "invalid class"
)

// InitValidators registers the student validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(classTag, classValidation)
	core.RegisterCustomTranslation(validate, translator, classTag, classText)
}

// classValidation checks that the class is one of Classes
func classValidation(fl validator.FieldLevel) bool {
	return IsClass(fl.Field().String())
}
