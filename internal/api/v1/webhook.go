package v1

import (
	"encoding/json"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/constants"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/metrics"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WebhookHandler receives provider callbacks. The route carries the
// subacquirer code so the payload can be decoded with the right profile.
type WebhookHandler struct {
	logger   *zap.Logger
	webhooks service.WebhookService
	metrics  *metrics.Metrics
}

func NewWebhookHandler(logger *zap.Logger, webhooks service.WebhookService, m *metrics.Metrics) *WebhookHandler {
	return &WebhookHandler{logger: logger, webhooks: webhooks, metrics: m}
}

func (h *WebhookHandler) ConfirmPix(c *fiber.Ctx) error {
	return h.confirm(c, model.TransactionTypePix)
}

func (h *WebhookHandler) ConfirmWithdraw(c *fiber.Ctx) error {
	return h.confirm(c, model.TransactionTypeWithdraw)
}

func (h *WebhookHandler) confirm(c *fiber.Ctx, transactionType string) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		h.logger.Warn("Failed to parse webhook body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	cmd := service.ProcessExternalWebhookCommand{
		TransactionType: transactionType,
		SubacquirerCode: c.Params("subacquirer"),
		Payload:         payload,
	}

	resp, err := h.webhooks.ProcessExternal(c.UserContext(), cmd)
	if err != nil {
		h.metrics.RecordWebhookAttempt(transactionType, model.AttemptSourceExternal, model.AttemptStatusFailed)
		return err
	}

	h.metrics.RecordWebhookAttempt(transactionType, model.AttemptSourceExternal, model.AttemptStatusSuccess)

	return c.JSON(resp)
}
