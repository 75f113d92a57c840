package entity

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBandOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   Band
	}{
		{amount: 10, want: BandNormal},
		{amount: 1000, want: BandNormal},
		{amount: 1000.5, want: BandMedium},
		{amount: 4999, want: BandMedium},
		{amount: 4999.5, want: BandNormal},
		{amount: 5000, want: BandNormal},
		{amount: 5000.01, want: BandHigh},
		{amount: 250000, want: BandHigh},
	}

	for _, tt := range tests {
		if got := BandOf(tt.amount); got != tt.want {
			t.Fatalf("BandOf(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNewAggregateEntry(t *testing.T) {
	t.Parallel()

	e := NewAggregateEntry(42, "rSender", "rRecipient", 123.5)

	if e.Sequence != 42 || e.SenderID != "rSender" || e.RecipientID != "rRecipient" || e.Amount != 123.5 {
		t.Fatalf("NewAggregateEntry() = %+v", e)
	}
	want := "<a href='https://xrpscan.com/account/rSender' target='_blank'> rSender</a>"
	if e.Sender != want {
		t.Fatalf("Sender = %q, want %q", e.Sender, want)
	}
	if e.Recipient != RenderAccount("rRecipient") {
		t.Fatalf("Recipient = %q", e.Recipient)
	}
}

func TestRenderAccountEscapesMarkup(t *testing.T) {
	t.Parallel()

	got := RenderAccount("r1'><img src=x onerror=alert(1)>")
	want := "<a href='https://xrpscan.com/account/r1&#39;&gt;&lt;img src=x onerror=alert(1)&gt;' target='_blank'>" +
		" r1&#39;&gt;&lt;img src=x onerror=alert(1)&gt;</a>"
	if got != want {
		t.Fatalf("RenderAccount() = %q, want %q", got, want)
	}
	if strings.Contains(got, "<img") {
		t.Fatalf("RenderAccount() = %q leaks an element", got)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	t.Parallel()

	var decodeErr *DecodeError
	err := error(&DecodeError{Reason: ReasonInvalidFrame, Err: io.ErrUnexpectedEOF})
	if !errors.As(err, &decodeErr) || decodeErr.Reason != ReasonInvalidFrame {
		t.Fatalf("errors.As(DecodeError) failed for %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("DecodeError does not unwrap to its cause")
	}
	if got := (&DecodeError{Reason: ReasonMissingSequence}).Error(); got != "decode record (missing_sequence)" {
		t.Fatalf("DecodeError.Error() = %q", got)
	}

	conv := &ConversionError{Raw: "12a", Err: io.EOF}
	if !errors.Is(conv, io.EOF) || conv.Error() != `convert amount "12a": EOF` {
		t.Fatalf("ConversionError = %q", conv.Error())
	}

	transport := &TransportError{Op: "dial", Err: io.EOF}
	if !errors.Is(transport, io.EOF) || transport.Error() != "feed dial: EOF" {
		t.Fatalf("TransportError = %q", transport.Error())
	}
}
