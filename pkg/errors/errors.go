package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no cart lines
	ErrEmptyCart = stderrors.New("cart is empty")

	// ErrSubmitInProgress is returned when a cart already has a checkout in flight
	ErrSubmitInProgress = stderrors.New("checkout already in progress for this cart")

	// ErrMalformedResponse is returned when the order API answers without the expected fields
	ErrMalformedResponse = stderrors.New("malformed order API response")
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when credentials are missing or wrong
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized: " + e.Message
}

// ErrInvalidStateTransition is returned for a disallowed order status change
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrInvalidPaymentTransition is returned for a disallowed payment status change
type ErrInvalidPaymentTransition struct {
	From domain.PaymentStatus
	To   domain.PaymentStatus
}

func (e *ErrInvalidPaymentTransition) Error() string {
	return fmt.Sprintf("invalid payment status transition from %s to %s", e.From, e.To)
}

// ErrValidation carries field-level checkout errors keyed by form field name
type ErrValidation struct {
	Fields map[string]string
}

func (e *ErrValidation) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// ErrOrderAPI is an error reported by the order API itself. Message and
// Details are shown to the customer verbatim.
type ErrOrderAPI struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *ErrOrderAPI) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("order API error (status %d): %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("order API error (status %d): %s", e.StatusCode, e.Message)
}

// Is and As re-export the standard library helpers so callers need one import
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }
