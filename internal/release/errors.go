package release

import "net/http"

// Kind identifies which precondition of the release protocol failed.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindAlreadyUsed         Kind = "ALREADY_USED"
	KindNotReleasable       Kind = "NOT_RELEASABLE"
	KindNotYetActive        Kind = "NOT_YET_ACTIVE"
	KindWindowExpired       Kind = "WINDOW_EXPIRED"
	KindInvalidPin          Kind = "INVALID_PIN"
	KindValidation          Kind = "VALIDATION"
	KindGenerationExhausted Kind = "GENERATION_EXHAUSTED"
)

// Error is a protocol failure with a client-safe message and an HTTP
// status hint. The message is surfaced verbatim on the dealer page.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func protocolError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Status: http.StatusBadRequest, Message: message}
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}
