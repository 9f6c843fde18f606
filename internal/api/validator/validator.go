package validator

import (
	"strings"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/metrics"
	"github.com/go-playground/validator/v10"
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type RequestValidator interface {
	Validate(data interface{}) []Error
	Message(errs []Error) string
}

type requestValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewRequestValidator(validate *validator.Validate, m *metrics.Metrics) RequestValidator {
	for tag, fn := range valid {
		validate.RegisterValidation(tag, fn)
	}

	return &requestValidator{validator: validate, metrics: m}
}

func (v *requestValidator) Validate(data interface{}) []Error {
	start := time.Now()

	errs := []Error{}
	if err := v.validator.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, Error{
				FailedField: fieldErr.Field(),
				Tag:         fieldErr.Tag(),
				Value:       fieldErr.Value(),
			})

			if v.metrics != nil {
				v.metrics.RecordValidationError(fieldErr.Field(), fieldErr.Tag())
			}
		}
	}

	if v.metrics != nil {
		v.metrics.RecordValidationDuration("request", time.Since(start))
	}

	return errs
}

func (v *requestValidator) Message(errs []Error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.FailedField+" failed on "+err.Tag)
	}
	return strings.Join(parts, " and ")
}
