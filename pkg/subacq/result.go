package subacq

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Operation string

const (
	OperationPix      Operation = "pix"
	OperationWithdraw Operation = "withdraw"
)

const (
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeAPIError     = "API_ERROR"
)

// Result is the normalized outcome of one provider call. Failures are carried
// in-band: the gateway never returns a Go error for a failed provider call.
type Result struct {
	Success    bool
	ExternalID *string
	Raw        json.RawMessage
	Error      string
}

// Transaction is the normalized transaction view the profiles build provider
// payloads from. Only the fields relevant to the operation are set.
type Transaction struct {
	TransactionID string
	ExternalID    *string
	Amount        decimal.Decimal
	PixKey        string
	PixKeyType    string
	BankCode      string
	Agency        string
	Account       string
	AccountType   string
	HolderName    string
	HolderDoc     string
	Description   string
	CreatedAt     time.Time
}
