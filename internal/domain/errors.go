package domain

import (
	"errors"
	"fmt"
)

// Customer-facing messages.
const (
	ErrMsgDimensionsPositive = "Genişlik, yükseklik ve adet 0'dan büyük olmalıdır."
	ErrMsgNoItems            = "Lütfen en az bir ürün ekleyin."
	ErrMsgUnknownModel       = "Geçersiz kapak modeli."
	ErrMsgUnknownColor       = "Geçersiz renk seçimi."
	ErrMsgInvalidRequest     = "Geçersiz istek."
	ErrMsgLoginFailed        = "Giriş yapılamadı, lütfen tekrar deneyin."
)

var ErrMissingCoefficient = errors.New("missing price coefficient")

// ValidationError is a user-correctable input problem. It never changes
// workflow state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError means the deployment is wrong, e.g. a model has no
// price coefficient. It must propagate, never be defaulted.
type ConfigurationError struct {
	Model CabinetModel
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for model %q: %v", e.Model, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
