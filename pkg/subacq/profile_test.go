package subacq_test

import (
	"testing"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfileFor(t *testing.T) {
	assert.Equal(t, subacq.CodeSubadqA, subacq.ProfileFor("subadqa").Code())
	assert.Equal(t, subacq.CodeSubadqA, subacq.ProfileFor("SUBADQA").Code())
	assert.Equal(t, subacq.CodeSubadqB, subacq.ProfileFor("subadqb").Code())
	assert.Equal(t, subacq.CodeSubadqB, subacq.ProfileFor("someone-new").Code())
}

func TestProfile_BuildRequest(t *testing.T) {
	t.Run("pix body carries key fields", func(t *testing.T) {
		tx := subacq.Transaction{
			TransactionID: "PIX-AAAA-1",
			Amount:        decimal.RequireFromString("100.50"),
			PixKey:        "user@example.com",
			PixKeyType:    "email",
			Description:   "order 42",
		}

		body := subacq.ProfileFor("subadqa").BuildRequest(subacq.OperationPix, tx)

		assert.Equal(t, "PIX-AAAA-1", body["transaction_id"])
		assert.Equal(t, 100.50, body["amount"])
		assert.Equal(t, "user@example.com", body["pix_key"])
		assert.Equal(t, "email", body["pix_key_type"])
		assert.NotContains(t, body, "bank_code")
	})

	t.Run("withdraw body carries bank fields", func(t *testing.T) {
		tx := subacq.Transaction{
			TransactionID: "WD-BBBB-1",
			Amount:        decimal.RequireFromString("250.00"),
			BankCode:      "341",
			Agency:        "0001",
			Account:       "12345-6",
			AccountType:   "checking",
			HolderName:    "Ana Souza",
			HolderDoc:     "11122233344",
		}

		body := subacq.ProfileFor("subadqb").BuildRequest(subacq.OperationWithdraw, tx)

		assert.Equal(t, "WD-BBBB-1", body["transaction_id"])
		assert.Equal(t, "341", body["bank_code"])
		assert.Equal(t, "0001", body["agency"])
		assert.Equal(t, "12345-6", body["account"])
		assert.Equal(t, "checking", body["account_type"])
		assert.NotContains(t, body, "pix_key")
	})
}

func TestSubadqA_GenerateConfirmationPayload(t *testing.T) {
	profile := subacq.ProfileFor("subadqa")

	t.Run("pix payload uses external id when present", func(t *testing.T) {
		tx := subacq.Transaction{
			TransactionID: "PIX-AAAA-1",
			ExternalID:    strPtr("EXT-1"),
			Amount:        decimal.RequireFromString("100.50"),
			CreatedAt:     time.Now(),
		}

		payload := profile.GenerateConfirmationPayload(subacq.OperationPix, tx)

		assert.Equal(t, "pix_payment_confirmed", payload["event"])
		assert.Equal(t, "EXT-1", payload["transaction_id"])
		assert.Equal(t, "CONFIRMED", payload["status"])
		assert.Equal(t, 100.50, payload["amount"])
		assert.NotEmpty(t, payload["pix_id"])
	})

	t.Run("pix payload falls back to transaction id", func(t *testing.T) {
		tx := subacq.Transaction{
			TransactionID: "PIX-AAAA-1",
			Amount:        decimal.RequireFromString("10.00"),
		}

		payload := profile.GenerateConfirmationPayload(subacq.OperationPix, tx)

		assert.Equal(t, "PIX-AAAA-1", payload["transaction_id"])
	})

	t.Run("withdraw payload is the flat completed shape", func(t *testing.T) {
		tx := subacq.Transaction{
			TransactionID: "WD-BBBB-1",
			ExternalID:    strPtr("EXT-9"),
			Amount:        decimal.RequireFromString("250.00"),
			CreatedAt:     time.Now(),
		}

		payload := profile.GenerateConfirmationPayload(subacq.OperationWithdraw, tx)

		assert.Equal(t, "withdraw_completed", payload["event"])
		assert.Equal(t, "EXT-9", payload["withdraw_id"])
		assert.Equal(t, "WD-BBBB-1", payload["transaction_id"])
		assert.Equal(t, "SUCCESS", payload["status"])
	})
}

func TestSubadqB_GenerateConfirmationPayload(t *testing.T) {
	profile := subacq.ProfileFor("subadqb")

	tx := subacq.Transaction{
		TransactionID: "PIX-CCCC-1",
		ExternalID:    strPtr("PX-7"),
		Amount:        decimal.RequireFromString("55.10"),
		Agency:        "0001",
		Account:       "12345-6",
	}

	t.Run("pix payload nests data.id", func(t *testing.T) {
		payload := profile.GenerateConfirmationPayload(subacq.OperationPix, tx)

		assert.Equal(t, "pix.status_update", payload["type"])
		assert.NotEmpty(t, payload["signature"])

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "PX-7", data["id"])
		assert.Equal(t, "PAID", data["status"])
		assert.Equal(t, 55.10, data["value"])
	})

	t.Run("withdraw payload nests bank account", func(t *testing.T) {
		payload := profile.GenerateConfirmationPayload(subacq.OperationWithdraw, tx)

		assert.Equal(t, "withdraw.status_update", payload["type"])

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "PX-7", data["id"])
		assert.Equal(t, "DONE", data["status"])

		account, ok := data["bank_account"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "0001", account["agency"])
	})
}

func TestProfile_ExtractCorrelationID(t *testing.T) {
	t.Run("subadqa pix prefers transaction_id over pix_id", func(t *testing.T) {
		profile := subacq.ProfileFor("subadqa")

		id := profile.ExtractCorrelationID(subacq.OperationPix, map[string]any{
			"transaction_id": "EXT-1",
			"pix_id":         "PIX123",
		})
		assert.Equal(t, "EXT-1", id)

		id = profile.ExtractCorrelationID(subacq.OperationPix, map[string]any{
			"pix_id": "PIX123",
		})
		assert.Equal(t, "PIX123", id)
	})

	t.Run("subadqa withdraw falls back to withdraw_id", func(t *testing.T) {
		profile := subacq.ProfileFor("subadqa")

		id := profile.ExtractCorrelationID(subacq.OperationWithdraw, map[string]any{
			"withdraw_id": "WD999",
		})
		assert.Equal(t, "WD999", id)
	})

	t.Run("subadqb reads nested data.id", func(t *testing.T) {
		profile := subacq.ProfileFor("subadqb")

		id := profile.ExtractCorrelationID(subacq.OperationPix, map[string]any{
			"data": map[string]any{"id": "PX-7"},
		})
		assert.Equal(t, "PX-7", id)
	})

	t.Run("subadqb without data yields empty", func(t *testing.T) {
		profile := subacq.ProfileFor("subadqb")

		id := profile.ExtractCorrelationID(subacq.OperationPix, map[string]any{
			"transaction_id": "EXT-1",
		})
		assert.Empty(t, id)
	})
}
