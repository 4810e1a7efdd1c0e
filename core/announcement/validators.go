package announcement

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var categoryTag = "anncategory"

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterEnum(validate, translator, categoryTag, Categories)
}
