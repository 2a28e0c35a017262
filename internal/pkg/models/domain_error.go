package models

import (
	"errors"
	"net/http"

	"mutual/loanlifecycle/internal/pkg/consts"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindNotFound      ErrorKind = "not_found"
	KindServer        ErrorKind = "server"
)

// DomainError is the error type surfaced by every write operation.
// Read paths may also return it for not-found lookups.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) ErrorCode() string {
	return e.Code
}

// HTTPStatus maps the error kind to the status code of the REST contract.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: consts.CodeValidation, Message: message}
}

func NewAuthorizationError(message string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Code: consts.CodeAuthorization, Message: message}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: consts.CodeConflict, Message: message}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: consts.CodeNotFound, Message: message}
}

func NewServerError(message string) *DomainError {
	return &DomainError{Kind: KindServer, Code: consts.CodeServer, Message: message}
}

// NewConnectivityError marks a network-level failure (no response at all),
// kept distinct from an HTTP error response carried by the remote service.
func NewConnectivityError(message string) *DomainError {
	return &DomainError{Kind: KindServer, Code: consts.CodeConnectivity, Message: message}
}

// AsDomainError unwraps err into a DomainError, or wraps it as a server
// error so handlers always have a mappable type.
func AsDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return NewServerError(consts.MsgUnexpected)
}
