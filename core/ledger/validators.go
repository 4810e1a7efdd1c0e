package ledger

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	typeTag     = "txtype"
	categoryTag = "txcategory"
	statusTag   = "txstatus"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterEnum(validate, translator, typeTag, Types)
	core.RegisterEnum(validate, translator, categoryTag, Categories)
	core.RegisterEnum(validate, translator, statusTag, Statuses)
}
