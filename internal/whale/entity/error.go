package entity

import "fmt"

// DecodeError reports a frame that could not be turned into a usable record.
type DecodeError struct {
	Reason Reason
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode record (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode record (%s)", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConversionError reports an amount that is not a non-negative integer string.
type ConversionError struct {
	Raw string
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("convert amount %q: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("convert amount %q", e.Raw)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// TransportError reports a feed connection failure. Op is one of dial,
// subscribe, read, ping or close.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
