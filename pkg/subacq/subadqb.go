package subacq

import "time"

// SubadqB speaks the envelope webhook format: a type discriminator plus a
// nested data object carrying the identifiers.
type SubadqB struct{}

func (SubadqB) Code() string { return CodeSubadqB }

func (SubadqB) BuildRequest(op Operation, tx Transaction) map[string]any {
	return buildRequestBody(op, tx)
}

func (SubadqB) ExtractExternalID(body map[string]any) *string {
	return externalIDFromResponse(body)
}

func (SubadqB) GenerateConfirmationPayload(op Operation, tx Transaction) map[string]any {
	now := time.Now().Format(time.RFC3339)

	if op == OperationWithdraw {
		id := "WDX" + randomToken(5)
		if tx.ExternalID != nil {
			id = *tx.ExternalID
		}

		return map[string]any{
			"type": "withdraw.status_update",
			"data": map[string]any{
				"id":     id,
				"status": "DONE",
				"amount": tx.Amount.InexactFloat64(),
				"bank_account": map[string]any{
					"bank":    "Nubank",
					"agency":  tx.Agency,
					"account": tx.Account,
				},
				"processed_at": now,
			},
			"signature": randomSignature(),
		}
	}

	id := "PX" + randomToken(9)
	if tx.ExternalID != nil {
		id = *tx.ExternalID
	}

	return map[string]any{
		"type": "pix.status_update",
		"data": map[string]any{
			"id":     id,
			"status": "PAID",
			"value":  tx.Amount.InexactFloat64(),
			"payer": map[string]any{
				"name":     "Maria Oliveira",
				"document": "98765432100",
			},
			"confirmed_at": now,
		},
		"signature": randomSignature(),
	}
}

func (SubadqB) ExtractCorrelationID(op Operation, payload map[string]any) string {
	data, ok := payload["data"].(map[string]any)
	if !ok {
		return ""
	}

	return extractString(data, "id")
}
