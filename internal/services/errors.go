package services

import "errors"

// ErrorKind classifies service failures for the API layer. NotificationFailed
// never escapes a service call; it exists for logging only.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindForbidden
	KindStoreUnavailable
	KindNotificationFailed
)

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func notFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func forbidden(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func storeUnavailable(err error) *ServiceError {
	return &ServiceError{Kind: KindStoreUnavailable, Message: "store unavailable", Err: err}
}

func kindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

func IsForbidden(err error) bool {
	return kindOf(err) == KindForbidden
}

func IsStoreUnavailable(err error) bool {
	return kindOf(err) == KindStoreUnavailable
}
