package service

type CreateTransactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	ExternalID    *string `json:"external_id"`
	Status        string  `json:"status"`
	Amount        string  `json:"amount"`
	CreatedAt     string  `json:"created_at"`
}

type TransactionStatusResponse struct {
	TransactionID string           `json:"transaction_id"`
	Type          string           `json:"type"`
	Status        string           `json:"status"`
	Amount        string           `json:"amount"`
	ExternalID    *string          `json:"external_id"`
	Subacquirer   string           `json:"subacquirer"`
	ConfirmedAt   *string          `json:"confirmed_at,omitempty"`
	PaidAt        *string          `json:"paid_at,omitempty"`
	CreatedAt     string           `json:"created_at"`
	Attempts      []WebhookAttempt `json:"webhook_attempts"`
}

type WebhookAttempt struct {
	AttemptNumber int     `json:"attempt_number"`
	Status        string  `json:"status"`
	Source        string  `json:"source"`
	Error         *string `json:"error,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type ProcessWebhookResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}
