package feed

import (
	"encoding/json"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

// Decode parses one stream frame. Frames without tx_json decode fine and are
// left for the filter to reject.
func Decode(raw []byte) (entity.TransactionRecord, error) {
	var rec entity.TransactionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entity.TransactionRecord{}, &entity.DecodeError{Reason: entity.ReasonInvalidFrame, Err: err}
	}
	return rec, nil
}
