package subacq

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	CodeSubadqA = "subadqa"
	CodeSubadqB = "subadqb"
)

// Profile captures everything that varies between subacquirer integrations:
// the request body shape, where the external id lives in the response, the
// shape of the confirmation webhook the provider sends back, and where the
// correlation id lives in an inbound callback.
type Profile interface {
	Code() string
	BuildRequest(op Operation, tx Transaction) map[string]any
	ExtractExternalID(body map[string]any) *string
	GenerateConfirmationPayload(op Operation, tx Transaction) map[string]any
	ExtractCorrelationID(op Operation, payload map[string]any) string
}

// ProfileFor returns the payload profile for a subacquirer code. Unknown codes
// get the SubadqB shape, which is the generic envelope format.
func ProfileFor(code string) Profile {
	if strings.ToLower(code) == CodeSubadqA {
		return SubadqA{}
	}
	return SubadqB{}
}

// buildRequestBody produces the outbound request body. Both known providers
// accept the same field set; only webhook shapes differ between them.
func buildRequestBody(op Operation, tx Transaction) map[string]any {
	body := map[string]any{
		"transaction_id": tx.TransactionID,
		"amount":         tx.Amount.InexactFloat64(),
		"description":    tx.Description,
	}

	if op == OperationWithdraw {
		body["bank_code"] = tx.BankCode
		body["agency"] = tx.Agency
		body["account"] = tx.Account
		body["account_type"] = tx.AccountType
		body["account_holder_name"] = tx.HolderName
		body["account_holder_document"] = tx.HolderDoc
		return body
	}

	body["pix_key"] = tx.PixKey
	body["pix_key_type"] = tx.PixKeyType
	return body
}

// externalIDFromResponse applies the provider-agnostic precedence: explicit
// "id" field, then "transaction_id", else nil.
func externalIDFromResponse(body map[string]any) *string {
	if id := extractString(body, "id"); id != "" {
		return &id
	}

	if id := extractString(body, "transaction_id"); id != "" {
		return &id
	}

	return nil
}

func randomToken(n int) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(token) {
		n = len(token)
	}
	return token[:n]
}

func randomSignature() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// extractString walks a string field out of a decoded JSON object, tolerating
// numeric ids.
func extractString(body map[string]any, key string) string {
	switch v := body[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
