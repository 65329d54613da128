package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the result code of a transaction that did not fail.
	SuccessABCICode = 0

	// Errors that do not carry a registered code are reported under the
	// internal code with a generic message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the result code and log for given error, as returned to
// the client that submitted a transaction.
//
// Only errors that wrap a registered root error expose their message. The
// rest are reported as internal errors unless debug is set, in which case
// the full message together with the stack trace is returned.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first layer of the error that declares
// one, unwrapping through Cause.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// errIsNil returns true if value represented by the given error is nil.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces errors that do not wrap a registered root error, and
// recovered panics, with a generic internal error.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// IsInternal returns true for errors that point at a failure of the node
// rather than a rejected request: errors without a registered code,
// recovered panics and storage failures.
func IsInternal(err error) bool {
	if errIsNil(err) {
		return false
	}
	return abciCode(err) == internalABCICode || ErrPanic.Is(err) || ErrDatabase.Is(err)
}
