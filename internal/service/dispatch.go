package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DispatchService creates a transaction, sends it to the subacquirer and
// records the outcome. Both operations are synchronous up to the provider
// response; confirmation always arrives later via webhook.
type DispatchService interface {
	CreatePix(ctx context.Context, cmd CreatePixCommand) (CreateTransactionResponse, error)
	CreateWithdraw(ctx context.Context, cmd CreateWithdrawCommand) (CreateTransactionResponse, error)
}

type dispatch struct {
	pixRepo      repository.PixTransactionRepository
	withdrawRepo repository.WithdrawTransactionRepository
	subacquirers SubacquirerService
	scheduler    SchedulerService
	logger       *zap.Logger
}

func NewDispatchService(pixRepo repository.PixTransactionRepository,
	withdrawRepo repository.WithdrawTransactionRepository, subacquirers SubacquirerService,
	scheduler SchedulerService, logger *zap.Logger) DispatchService {
	return &dispatch{pixRepo: pixRepo, withdrawRepo: withdrawRepo, subacquirers: subacquirers,
		scheduler: scheduler, logger: logger}
}

func (d *dispatch) CreatePix(ctx context.Context, cmd CreatePixCommand) (CreateTransactionResponse, error) {
	if !cmd.Amount.IsPositive() {
		return CreateTransactionResponse{}, NewServiceError(ErrCodeValidation, errors.New("AMOUNT_MUST_BE_POSITIVE"))
	}

	sub, err := d.subacquirers.ResolveActive(cmd.SubacquirerCode)
	if err != nil {
		return CreateTransactionResponse{}, wrapResolveError(err)
	}

	tx := &model.PixTransaction{
		OwnerID:       cmd.OwnerID,
		SubacquirerID: sub.ID,
		TransactionID: newTransactionRef("PIX"),
		Amount:        cmd.Amount,
		PixKey:        cmd.PixKey,
		PixKeyType:    cmd.PixKeyType,
		Status:        model.StatusPending,
		Description:   cmd.Description,
	}

	profile := subacq.ProfileFor(sub.Code)
	body := profile.BuildRequest(subacq.OperationPix, subacq.Transaction{
		TransactionID: tx.TransactionID,
		Amount:        cmd.Amount,
		PixKey:        cmd.PixKey,
		PixKeyType:    cmd.PixKeyType,
		Description:   cmd.Description,
	})
	tx.RequestData, _ = json.Marshal(body)

	if err := d.pixRepo.Create(ctx, tx); err != nil {
		d.logger.Error("Failed to persist pix transaction",
			zap.String("transactionID", tx.TransactionID),
			zap.Error(err))
		return CreateTransactionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	d.logger.Info("Pix transaction created",
		zap.Int64("id", tx.ID),
		zap.String("transactionID", tx.TransactionID),
		zap.String("subacquirer", sub.Code),
		zap.String("amount", cmd.Amount.String()))

	result := d.subacquirers.GatewayFor(sub).Send(ctx, subacq.OperationPix, body)

	tx.ResponseData = responseData(result)
	tx.ExternalID = result.ExternalID

	if !result.Success {
		tx.Status = model.StatusFailed
		if err := d.pixRepo.Update(ctx, tx); err != nil {
			d.logger.Error("Failed to record pix dispatch failure",
				zap.Int64("id", tx.ID), zap.Error(err))
		}

		return CreateTransactionResponse{}, NewServiceError(ErrCodeProviderError, errors.New(result.Error))
	}

	tx.Status = model.StatusProcessing
	if err := d.pixRepo.Update(ctx, tx); err != nil {
		d.logger.Error("Failed to record pix dispatch success",
			zap.Int64("id", tx.ID), zap.Error(err))
		return CreateTransactionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	// A lost schedule is recovered by the stale sweep, so the accepted
	// transaction is still returned to the caller.
	if _, err := d.scheduler.ScheduleConfirmation(ctx, model.TransactionTypePix, tx.ID); err != nil {
		d.logger.Error("Failed to schedule pix confirmation",
			zap.Int64("id", tx.ID), zap.Error(err))
	}

	return createResponse(tx.TransactionID, tx.ExternalID, tx.Status, cmd.Amount.StringFixed(2), tx.CreatedAt), nil
}

func (d *dispatch) CreateWithdraw(ctx context.Context, cmd CreateWithdrawCommand) (CreateTransactionResponse, error) {
	if !cmd.Amount.IsPositive() {
		return CreateTransactionResponse{}, NewServiceError(ErrCodeValidation, errors.New("AMOUNT_MUST_BE_POSITIVE"))
	}

	sub, err := d.subacquirers.ResolveActive(cmd.SubacquirerCode)
	if err != nil {
		return CreateTransactionResponse{}, wrapResolveError(err)
	}

	tx := &model.WithdrawTransaction{
		OwnerID:        cmd.OwnerID,
		SubacquirerID:  sub.ID,
		TransactionID:  newTransactionRef("WD"),
		Amount:         cmd.Amount,
		BankCode:       cmd.BankCode,
		Agency:         cmd.Agency,
		Account:        cmd.Account,
		AccountType:    cmd.AccountType,
		HolderName:     cmd.HolderName,
		HolderDocument: cmd.HolderDocument,
		Status:         model.StatusPending,
		Description:    cmd.Description,
	}

	profile := subacq.ProfileFor(sub.Code)
	body := profile.BuildRequest(subacq.OperationWithdraw, subacq.Transaction{
		TransactionID: tx.TransactionID,
		Amount:        cmd.Amount,
		BankCode:      cmd.BankCode,
		Agency:        cmd.Agency,
		Account:       cmd.Account,
		AccountType:   cmd.AccountType,
		HolderName:    cmd.HolderName,
		HolderDoc:     cmd.HolderDocument,
		Description:   cmd.Description,
	})
	tx.RequestData, _ = json.Marshal(body)

	if err := d.withdrawRepo.Create(ctx, tx); err != nil {
		d.logger.Error("Failed to persist withdraw transaction",
			zap.String("transactionID", tx.TransactionID),
			zap.Error(err))
		return CreateTransactionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	d.logger.Info("Withdraw transaction created",
		zap.Int64("id", tx.ID),
		zap.String("transactionID", tx.TransactionID),
		zap.String("subacquirer", sub.Code),
		zap.String("amount", cmd.Amount.String()))

	result := d.subacquirers.GatewayFor(sub).Send(ctx, subacq.OperationWithdraw, body)

	tx.ResponseData = responseData(result)
	tx.ExternalID = result.ExternalID

	if !result.Success {
		tx.Status = model.StatusFailed
		if err := d.withdrawRepo.Update(ctx, tx); err != nil {
			d.logger.Error("Failed to record withdraw dispatch failure",
				zap.Int64("id", tx.ID), zap.Error(err))
		}

		return CreateTransactionResponse{}, NewServiceError(ErrCodeProviderError, errors.New(result.Error))
	}

	tx.Status = model.StatusProcessing
	if err := d.withdrawRepo.Update(ctx, tx); err != nil {
		d.logger.Error("Failed to record withdraw dispatch success",
			zap.Int64("id", tx.ID), zap.Error(err))
		return CreateTransactionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	if _, err := d.scheduler.ScheduleConfirmation(ctx, model.TransactionTypeWithdraw, tx.ID); err != nil {
		d.logger.Error("Failed to schedule withdraw confirmation",
			zap.Int64("id", tx.ID), zap.Error(err))
	}

	return createResponse(tx.TransactionID, tx.ExternalID, tx.Status, cmd.Amount.StringFixed(2), tx.CreatedAt), nil
}

// newTransactionRef builds the internal reference: prefix, sixteen uppercase
// random characters and the creation unix time.
func newTransactionRef(prefix string) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	return fmt.Sprintf("%s-%s-%d", prefix, token, time.Now().Unix())
}

func responseData(result subacq.Result) []byte {
	if len(result.Raw) > 0 {
		return result.Raw
	}

	data, _ := json.Marshal(map[string]string{"error": result.Error})
	return data
}

func createResponse(ref string, externalID *string, status model.TransactionStatus, amount string, createdAt time.Time) CreateTransactionResponse {
	return CreateTransactionResponse{
		TransactionID: ref,
		ExternalID:    externalID,
		Status:        string(status),
		Amount:        amount,
		CreatedAt:     createdAt.UTC().Format(time.RFC3339),
	}
}

func wrapResolveError(err error) error {
	if errors.Is(err, ErrSubacquirerNotFound) || errors.Is(err, ErrSubacquirerInactive) {
		return NewServiceError(ErrCodeSubacquirerUnavailable, err)
	}
	return NewServiceError(ErrCodeDatabase, err)
}
