package entity

type Outcome string

const (
	OutcomeQualified Outcome = "qualified"
	OutcomeFiltered  Outcome = "filtered"
	OutcomeMalformed Outcome = "malformed"
)

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoPayload       Reason = "no_payload"
	ReasonNotPayment      Reason = "not_payment"
	ReasonMissingParty    Reason = "missing_party"
	ReasonExcludedParty   Reason = "excluded_party"
	ReasonSelfTransfer    Reason = "self_transfer"
	ReasonMissingAmount   Reason = "missing_amount"
	ReasonNonNativeAmount Reason = "non_native_amount"
	ReasonConversion      Reason = "conversion_failed"
	ReasonBelowMinimum    Reason = "below_minimum"
	ReasonMissingSequence Reason = "missing_sequence"
	ReasonInvalidFrame    Reason = "invalid_frame"
)

type Band string

const (
	BandNormal Band = "normal"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// BandOf buckets an amount for highlighting. Amounts in (4999, 5000] stay normal.
func BandOf(amount float64) Band {
	switch {
	case amount > 5000:
		return BandHigh
	case amount > 1000 && amount <= 4999:
		return BandMedium
	default:
		return BandNormal
	}
}
