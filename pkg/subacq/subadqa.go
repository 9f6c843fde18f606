package subacq

import "time"

// SubadqA speaks the flat webhook format: event name and identifiers at the
// top level of the payload.
type SubadqA struct{}

func (SubadqA) Code() string { return CodeSubadqA }

func (SubadqA) BuildRequest(op Operation, tx Transaction) map[string]any {
	return buildRequestBody(op, tx)
}

func (SubadqA) ExtractExternalID(body map[string]any) *string {
	return externalIDFromResponse(body)
}

func (SubadqA) GenerateConfirmationPayload(op Operation, tx Transaction) map[string]any {
	now := time.Now().Format(time.RFC3339)

	if op == OperationWithdraw {
		withdrawID := "WD" + randomToken(9)
		if tx.ExternalID != nil {
			withdrawID = *tx.ExternalID
		}

		return map[string]any{
			"event":          "withdraw_completed",
			"withdraw_id":    withdrawID,
			"transaction_id": tx.TransactionID,
			"status":         "SUCCESS",
			"amount":         tx.Amount.InexactFloat64(),
			"requested_at":   tx.CreatedAt.Format(time.RFC3339),
			"completed_at":   now,
			"metadata": map[string]any{
				"source":           "SubadqA",
				"destination_bank": "Itaú",
			},
		}
	}

	transactionID := tx.TransactionID
	if tx.ExternalID != nil {
		transactionID = *tx.ExternalID
	}

	return map[string]any{
		"event":          "pix_payment_confirmed",
		"transaction_id": transactionID,
		"pix_id":         "PIX" + randomToken(9),
		"status":         "CONFIRMED",
		"amount":         tx.Amount.InexactFloat64(),
		"payer_name":     "João da Silva",
		"payer_cpf":      "12345678900",
		"payment_date":   now,
		"metadata": map[string]any{
			"source":      "SubadqA",
			"environment": "sandbox",
		},
	}
}

func (SubadqA) ExtractCorrelationID(op Operation, payload map[string]any) string {
	if id := extractString(payload, "transaction_id"); id != "" {
		return id
	}

	if op == OperationWithdraw {
		return extractString(payload, "withdraw_id")
	}

	return extractString(payload, "pix_id")
}
