package service

import "errors"

const (
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeSubacquirerUnavailable = "SUBACQUIRER_UNAVAILABLE"
	ErrCodeProviderError          = "PROVIDER_ERROR"
	ErrCodeDatabase               = "DATABASE_ERROR"
)

var (
	ErrTransactionNotFound         = errors.New("TRANSACTION_NOT_FOUND")
	ErrTransactionAlreadyProcessed = errors.New("TRANSACTION_ALREADY_PROCESSED")
	ErrConfirmationInProgress      = errors.New("CONFIRMATION_IN_PROGRESS")
	ErrSubacquirerNotFound         = errors.New("SUBACQUIRER_NOT_FOUND")
	ErrSubacquirerInactive         = errors.New("SUBACQUIRER_INACTIVE")
	ErrCorrelationIDMissing        = errors.New("CORRELATION_ID_MISSING")
	ErrJobNotFound                 = errors.New("CONFIRMATION_JOB_NOT_FOUND")
	ErrDatabase                    = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
