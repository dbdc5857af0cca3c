package errors

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var ErrInvalidCategory = NewValidationError("Invalid category")
var ErrInvalidPeriodType = NewValidationError("Period type must be 'weekly' or 'monthly'")

// DependencyReadError wraps a failed read against the limit registry or the
// expense ledger. It aborts the whole evaluation.
type DependencyReadError struct {
	Source string // "limits" or "expenses"
	Err    error
}

func (e *DependencyReadError) Error() string {
	return fmt.Sprintf("reading %s failed: %v", e.Source, e.Err)
}

func (e *DependencyReadError) Unwrap() error {
	return e.Err
}

func NewDependencyReadError(source string, err error) error {
	return &DependencyReadError{Source: source, Err: err}
}

func IsDependencyReadError(err error) bool {
	var dependencyReadError *DependencyReadError
	ok := errors.As(err, &dependencyReadError)
	return ok
}

// LookupError marks a failed user or category name resolution for one limit.
// The affected limit is skipped, the rest continue.
type LookupError struct {
	Kind string // "user" or "category"
	ID   string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup of %s %q failed: %v", e.Kind, e.ID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func NewLookupError(kind, id string, err error) error {
	return &LookupError{Kind: kind, ID: id, Err: err}
}

func IsLookupError(err error) bool {
	var lookupError *LookupError
	ok := errors.As(err, &lookupError)
	return ok
}

// NotificationDeliveryError marks a failed notification for one breached
// limit. Never fatal for the evaluation.
type NotificationDeliveryError struct {
	Recipient string
	Err       error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("notification to %q failed: %v", e.Recipient, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return e.Err
}

func NewNotificationDeliveryError(recipient string, err error) error {
	return &NotificationDeliveryError{Recipient: recipient, Err: err}
}

func IsNotificationDeliveryError(err error) bool {
	var deliveryError *NotificationDeliveryError
	ok := errors.As(err, &deliveryError)
	return ok
}

// DataIntegrityError marks a limit record that cannot be evaluated, e.g. a
// non-positive amount. The record is skipped, never divided by.
type DataIntegrityError struct {
	LimitID string
	Msg     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("limit %s: %s", e.LimitID, e.Msg)
}

func NewDataIntegrityError(limitID, msg string) error {
	return &DataIntegrityError{LimitID: limitID, Msg: msg}
}

func IsDataIntegrityError(err error) bool {
	var dataIntegrityError *DataIntegrityError
	ok := errors.As(err, &dataIntegrityError)
	return ok
}
