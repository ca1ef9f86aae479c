package index

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

var ErrCorrupt = errors.New("corrupt index")

// Encode serializes records in index order. A nil slice encodes as [].
func Encode(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	return json.Marshal(records)
}

// Decode parses a serialized index and checks the record invariants.
func Decode(data []byte) ([]models.Record, error) {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if records == nil {
		// "null" is not a saved index
		return nil, fmt.Errorf("%w: not a list", ErrCorrupt)
	}

	if err := Check(records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return records, nil
}

// Check validates every record and id uniqueness.
func Check(records []models.Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("record %d: %w %q", i, models.ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
