package v1

type CreatePixRequest struct {
	OwnerID     int64  `json:"owner_id" validate:"required,min=1"`
	Subacquirer string `json:"subacquirer" validate:"required"`
	Amount      string `json:"amount" validate:"required,amount"`
	PixKey      string `json:"pix_key" validate:"required,max=255"`
	PixKeyType  string `json:"pix_key_type" validate:"required,pix_key_type"`
	Description string `json:"description" validate:"max=500"`
}

type CreateWithdrawRequest struct {
	OwnerID        int64  `json:"owner_id" validate:"required,min=1"`
	Subacquirer    string `json:"subacquirer" validate:"required"`
	Amount         string `json:"amount" validate:"required,amount"`
	BankCode       string `json:"bank_code" validate:"required,max=10"`
	Agency         string `json:"agency" validate:"required,max=20"`
	Account        string `json:"account" validate:"required,max=20"`
	AccountType    string `json:"account_type" validate:"required,account_type"`
	HolderName     string `json:"account_holder_name" validate:"required,max=255"`
	HolderDocument string `json:"account_holder_document" validate:"required,max=20"`
	Description    string `json:"description" validate:"max=500"`
}
