package constants

const (
	ErrCodeValidationError        = "VALIDATION_ERROR"
	ErrCodeInvalidRequestBody     = "INVALID_REQUEST_BODY"
	ErrCodeSubacquirerUnavailable = "SUBACQUIRER_UNAVAILABLE"
	ErrCodeSubacquirerNotFound    = "SUBACQUIRER_NOT_FOUND"
	ErrCodeTransactionNotFound    = "TRANSACTION_NOT_FOUND"
	ErrCodeAlreadyProcessed       = "TRANSACTION_ALREADY_PROCESSED"
	ErrCodeConfirmationInProgress = "CONFIRMATION_IN_PROGRESS"
	ErrCodeProviderError          = "PROVIDER_ERROR"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

const (
	ErrMsgValidationError        = "request validation failed"
	ErrMsgInvalidRequestBody     = "failed to parse request body"
	ErrMsgSubacquirerUnavailable = "subacquirer unknown or inactive"
	ErrMsgSubacquirerNotFound    = "subacquirer not found"
	ErrMsgTransactionNotFound    = "transaction not found"
	ErrMsgAlreadyProcessed       = "transaction already processed"
	ErrMsgConfirmationInProgress = "confirmation already in progress"
	ErrMsgProviderError          = "subacquirer rejected the transaction"
	ErrMsgInternalError          = "internal server error"
)

var errorMessages = map[string]string{
	ErrCodeValidationError:        ErrMsgValidationError,
	ErrCodeInvalidRequestBody:     ErrMsgInvalidRequestBody,
	ErrCodeSubacquirerUnavailable: ErrMsgSubacquirerUnavailable,
	ErrCodeSubacquirerNotFound:    ErrMsgSubacquirerNotFound,
	ErrCodeTransactionNotFound:    ErrMsgTransactionNotFound,
	ErrCodeAlreadyProcessed:       ErrMsgAlreadyProcessed,
	ErrCodeConfirmationInProgress: ErrMsgConfirmationInProgress,
	ErrCodeProviderError:          ErrMsgProviderError,
	ErrCodeInternalError:          ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeTransactionNotFound, ErrCodeSubacquirerNotFound:
		return 404
	case ErrCodeAlreadyProcessed, ErrCodeConfirmationInProgress:
		return 409
	case ErrCodeValidationError, ErrCodeSubacquirerUnavailable:
		return 422
	case ErrCodeProviderError:
		return 502
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
