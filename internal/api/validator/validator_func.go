package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	PixKeyTypeTag  = "pix_key_type"
	AccountTypeTag = "account_type"
	AmountTag      = "amount"
)

var pixKeyTypes = map[string]bool{
	"cpf":    true,
	"cnpj":   true,
	"email":  true,
	"phone":  true,
	"random": true,
}

var accountTypes = map[string]bool{
	"checking": true,
	"savings":  true,
}

var valid = map[string]func(fl validator.FieldLevel) bool{
	PixKeyTypeTag:  ValidatePixKeyType,
	AccountTypeTag: ValidateAccountType,
	AmountTag:      ValidateAmount,
}

func ValidatePixKeyType(fl validator.FieldLevel) bool {
	return pixKeyTypes[fl.Field().String()]
}

func ValidateAccountType(fl validator.FieldLevel) bool {
	return accountTypes[fl.Field().String()]
}

// ValidateAmount accepts decimal strings strictly greater than zero.
func ValidateAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive()
}
