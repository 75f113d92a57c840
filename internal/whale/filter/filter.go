// Package filter decides which stream records are whale payments.
package filter

import (
	"bytes"
	"encoding/json"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
	"github.com/shandysiswandi/xrpwhale/internal/whale/unit"
)

const (
	// MinAmount is the smallest XRP amount that qualifies.
	MinAmount = 10.0

	ExcludedSender    = "X"
	ExcludedRecipient = "Y"

	paymentType = "Payment"
)

// Decision is the outcome of classifying one record. Err is set for
// conversion failures and malformed records.
type Decision struct {
	Outcome   entity.Outcome
	Reason    entity.Reason
	Amount    float64
	Sequence  int64
	Sender    string
	Recipient string
	Err       error
}

// Qualifies reports whether rec is a qualifying payment and its XRP amount.
func Qualifies(rec entity.TransactionRecord) (bool, float64) {
	d := Classify(rec)
	if d.Outcome != entity.OutcomeQualified {
		return false, 0
	}
	return true, d.Amount
}

// Classify applies the rules in order and stops at the first failing one.
func Classify(rec entity.TransactionRecord) Decision {
	tx := rec.TxJSON
	if tx == nil {
		return filtered(entity.ReasonNoPayload, nil)
	}

	if tx.TransactionType != paymentType {
		return filtered(entity.ReasonNotPayment, nil)
	}

	if tx.Account == "" || tx.Destination == "" {
		return filtered(entity.ReasonMissingParty, nil)
	}

	if tx.Account == ExcludedSender || tx.Destination == ExcludedRecipient {
		return filtered(entity.ReasonExcludedParty, nil)
	}

	if tx.Account == tx.Destination {
		return filtered(entity.ReasonSelfTransfer, nil)
	}

	raw := tx.DeliverMax
	if isFalsy(raw) {
		raw = tx.Amount
	}
	if isFalsy(raw) {
		return filtered(entity.ReasonMissingAmount, nil)
	}

	raw = bytes.TrimSpace(raw)
	var drops string
	if raw[0] != '"' || json.Unmarshal(raw, &drops) != nil {
		return filtered(entity.ReasonNonNativeAmount, nil)
	}

	amount, err := unit.ToMajorUnits(drops)
	if err != nil {
		return filtered(entity.ReasonConversion, err)
	}

	if amount < MinAmount {
		return Decision{Outcome: entity.OutcomeFiltered, Reason: entity.ReasonBelowMinimum, Amount: amount}
	}

	if tx.LastLedgerSequence == nil {
		return Decision{
			Outcome: entity.OutcomeMalformed,
			Reason:  entity.ReasonMissingSequence,
			Amount:  amount,
			Err:     &entity.DecodeError{Reason: entity.ReasonMissingSequence},
		}
	}

	return Decision{
		Outcome:   entity.OutcomeQualified,
		Amount:    amount,
		Sequence:  *tx.LastLedgerSequence,
		Sender:    tx.Account,
		Recipient: tx.Destination,
	}
}

func filtered(reason entity.Reason, err error) Decision {
	return Decision{Outcome: entity.OutcomeFiltered, Reason: reason, Err: err}
}

// isFalsy treats a missing, null or empty-string amount as absent.
func isFalsy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}
