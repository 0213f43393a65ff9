package service

import (
	"errors"
	"fmt"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

// Error kinds returned by the services. Match them with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrNotFound              = errors.New("not found")
	ErrPersistence           = errors.New("persistence failure")
	ErrIDGenerationCollision = errors.New("id generation collision")
)

// errIdeaIDTaken aborts a submission transaction whose idea code was taken
// after the existence check
var errIdeaIDTaken = errors.New("idea id taken")

// ServiceError carries an API error code and message for a kind
type ServiceError struct {
	Kind    error
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is
func (e *ServiceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func invalidInput(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrInvalidInput, Code: models.ErrCodeValidationError, Message: fmt.Sprintf(format, args...)}
}

func invalidTransition(from, to models.IdeaStatus) error {
	return &ServiceError{
		Kind:    ErrInvalidTransition,
		Code:    models.ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot change status from %s to %s", from, to),
	}
}

func notFound(code, format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func persistence(message string, cause error) error {
	return &ServiceError{Kind: ErrPersistence, Code: models.ErrCodeDatabaseError, Message: message, Cause: cause}
}

// storeError maps store.ErrNotFound to a not-found error with the given code
// and wraps every other store failure as a persistence error
func storeError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, store.ErrNotFound) {
		return notFound(code, "%s", message)
	}
	return persistence("failed to access "+message, err)
}

// ErrorCode returns the API error code of err
func ErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Code != "" {
		return svcErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return models.ErrCodeValidationError
	case errors.Is(err, ErrInvalidTransition):
		return models.ErrCodeInvalidTransition
	case errors.Is(err, ErrNotFound):
		return models.ErrCodeNotFound
	case errors.Is(err, ErrIDGenerationCollision):
		return models.ErrCodeIDCollision
	case errors.Is(err, ErrPersistence):
		return models.ErrCodeDatabaseError
	default:
		return models.ErrCodeInternalError
	}
}
