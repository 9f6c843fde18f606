package v1

import (
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/api/middleware"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/api/validator"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/constants"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/metrics"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	dispatch  service.DispatchService
	query     service.TransactionQueryService
	validator validator.RequestValidator
	metrics   *metrics.Metrics
}

func NewHandler(logger *zap.Logger, dispatch service.DispatchService, query service.TransactionQueryService,
	requestValidator validator.RequestValidator, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, dispatch: dispatch, query: query, validator: requestValidator, metrics: m}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreatePix(c *fiber.Ctx) error {
	var request CreatePixRequest

	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    constants.ErrCodeValidationError,
			"message": h.validator.Message(errs),
		})
	}

	amount, _ := decimal.NewFromString(request.Amount)
	cmd := service.CreatePixCommand{
		OwnerID:         request.OwnerID,
		SubacquirerCode: request.Subacquirer,
		Amount:          amount,
		PixKey:          request.PixKey,
		PixKeyType:      request.PixKeyType,
		Description:     request.Description,
	}

	resp, err := h.dispatch.CreatePix(c.UserContext(), cmd)
	if err != nil {
		h.metrics.RecordTransactionError(model.TransactionTypePix, middleware.ErrorCode(err))
		h.logger.Error("Failed to create pix transaction",
			zap.Error(err),
			zap.Int64("ownerID", request.OwnerID),
			zap.String("subacquirer", request.Subacquirer))
		return err
	}

	h.metrics.RecordTransactionCreated(model.TransactionTypePix)

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) CreateWithdraw(c *fiber.Ctx) error {
	var request CreateWithdrawRequest

	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    constants.ErrCodeValidationError,
			"message": h.validator.Message(errs),
		})
	}

	amount, _ := decimal.NewFromString(request.Amount)
	cmd := service.CreateWithdrawCommand{
		OwnerID:         request.OwnerID,
		SubacquirerCode: request.Subacquirer,
		Amount:          amount,
		BankCode:        request.BankCode,
		Agency:          request.Agency,
		Account:         request.Account,
		AccountType:     request.AccountType,
		HolderName:      request.HolderName,
		HolderDocument:  request.HolderDocument,
		Description:     request.Description,
	}

	resp, err := h.dispatch.CreateWithdraw(c.UserContext(), cmd)
	if err != nil {
		h.metrics.RecordTransactionError(model.TransactionTypeWithdraw, middleware.ErrorCode(err))
		h.logger.Error("Failed to create withdraw transaction",
			zap.Error(err),
			zap.Int64("ownerID", request.OwnerID),
			zap.String("subacquirer", request.Subacquirer))
		return err
	}

	h.metrics.RecordTransactionCreated(model.TransactionTypeWithdraw)

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) GetPixStatus(c *fiber.Ctx) error {
	resp, err := h.query.GetPixStatus(c.UserContext(), c.Params("transactionId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *Handler) GetWithdrawStatus(c *fiber.Ctx) error {
	resp, err := h.query.GetWithdrawStatus(c.UserContext(), c.Params("transactionId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
