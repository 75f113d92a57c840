package entity

import (
	"fmt"
	"html"
)

const accountExplorerURL = "https://xrpscan.com/account/"

type AggregateEntry struct {
	Sequence    int64
	SenderID    string
	RecipientID string
	Sender      string
	Recipient   string
	Amount      float64
}

// NewAggregateEntry builds an entry with display-ready sender and recipient links.
func NewAggregateEntry(sequence int64, sender, recipient string, amount float64) AggregateEntry {
	return AggregateEntry{
		Sequence:    sequence,
		SenderID:    sender,
		RecipientID: recipient,
		Sender:      RenderAccount(sender),
		Recipient:   RenderAccount(recipient),
		Amount:      amount,
	}
}

// RenderAccount renders an account as an explorer link. The id is both the
// link target and the label, HTML-escaped since it comes from the feed.
func RenderAccount(id string) string {
	escaped := html.EscapeString(id)
	return fmt.Sprintf("<a href='%s%s' target='_blank'> %s</a>", accountExplorerURL, escaped, escaped)
}
