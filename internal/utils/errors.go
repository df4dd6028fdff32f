package utils

import "fmt"

// AlertKind tells which of the two user-facing failures happened.
type AlertKind int

const (
	KindValidation AlertKind = iota + 1
	KindTransport
)

const (
	MsgInvalidDigits = "Enter exactly 4 digits!"
	MsgSendFailed    = "Error sending"
)

// AlertError is an error the user sees as a blocking alert.
type AlertError struct {
	Kind    AlertKind
	Message string
	Err     error
}

func (e *AlertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AlertError) Unwrap() error { return e.Err }

// Is matches any AlertError of the same kind.
func (e *AlertError) Is(target error) bool {
	t, ok := target.(*AlertError)
	return ok && t.Kind == e.Kind
}

func NewValidationError() error {
	return &AlertError{Kind: KindValidation, Message: MsgInvalidDigits}
}

func NewTransportError(err error) error {
	return &AlertError{Kind: KindTransport, Message: MsgSendFailed, Err: err}
}

var (
	// ErrValidation and ErrTransport are targets for errors.Is.
	ErrValidation = &AlertError{Kind: KindValidation, Message: MsgInvalidDigits}
	ErrTransport  = &AlertError{Kind: KindTransport, Message: MsgSendFailed}
)
