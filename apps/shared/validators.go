// Package shared holds the setup the API and the admin CLI have in common.
package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

// NewValidator returns a validator knowing every custom tag of the app, and its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()

	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	member.InitValidators(validate, translator)
	announcement.InitValidators(validate, translator)
	ledger.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)

	return validate, translator
}
