// File: internal/services/notify/errors.go
package notify

import "fmt"

type ErrorType string

const (
    ErrTypeConfig     ErrorType = "CONFIG"
    ErrTypeNetwork    ErrorType = "NETWORK"
    ErrTypeProvider   ErrorType = "PROVIDER"
    ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
    ErrTypeValidation ErrorType = "VALIDATION"
)

type EmailError struct {
    Type    ErrorType
    Code    int
    Message string
    Cause   error
}

func (e *EmailError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("email %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
    }
    return fmt.Sprintf("email %s error: %s", e.Type, e.Message)
}

func (e *EmailError) Unwrap() error {
    return e.Cause
}
