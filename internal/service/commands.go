package service

import "github.com/shopspring/decimal"

type CreatePixCommand struct {
	OwnerID         int64
	SubacquirerCode string
	Amount          decimal.Decimal
	PixKey          string
	PixKeyType      string
	Description     string
}

type CreateWithdrawCommand struct {
	OwnerID         int64
	SubacquirerCode string
	Amount          decimal.Decimal
	BankCode        string
	Agency          string
	Account         string
	AccountType     string
	HolderName      string
	HolderDocument  string
	Description     string
}

type ConfirmTransactionCommand struct {
	JobID           int64  `json:"job_id"`
	TransactionType string `json:"transaction_type"`
	TransactionID   int64  `json:"transaction_id"`
	Attempt         int    `json:"attempt"`
}

type ProcessExternalWebhookCommand struct {
	TransactionType string
	SubacquirerCode string
	Payload         map[string]any
}
