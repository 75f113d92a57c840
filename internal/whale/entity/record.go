package entity

import "encoding/json"

// TransactionRecord is one decoded frame of the XRPL transactions stream.
type TransactionRecord struct {
	Type        string  `json:"type"`
	Hash        string  `json:"hash"`
	LedgerIndex int64   `json:"ledger_index"`
	Validated   bool    `json:"validated"`
	TxJSON      *TxJSON `json:"tx_json"`
}

// TxJSON holds the transaction fields the filter looks at. Amount fields stay
// raw because they are either a drops string or an issued-currency object.
type TxJSON struct {
	TransactionType    string          `json:"TransactionType"`
	Account            string          `json:"Account"`
	Destination        string          `json:"Destination"`
	LastLedgerSequence *int64          `json:"LastLedgerSequence"`
	DeliverMax         json.RawMessage `json:"DeliverMax"`
	Amount             json.RawMessage `json:"Amount"`
}
