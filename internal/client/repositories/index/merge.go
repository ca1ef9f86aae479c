package index

import "github.com/dmitrijs2005/healthrecords/internal/client/models"

// Merge returns existing with the records of incoming whose id is unknown
// prepended, keeping incoming's relative order. incoming entries that
// repeat an id are taken once. Neither input is modified.
func Merge(existing, incoming []models.Record) (merged []models.Record, added int) {
	known := make(map[string]struct{}, len(existing)+len(incoming))
	for _, r := range existing {
		known[r.ID] = struct{}{}
	}

	fresh := make([]models.Record, 0, len(incoming))
	for _, r := range incoming {
		if _, ok := known[r.ID]; ok {
			continue
		}
		known[r.ID] = struct{}{}
		fresh = append(fresh, r.Clone())
	}

	merged = make([]models.Record, 0, len(fresh)+len(existing))
	merged = append(merged, fresh...)
	for _, r := range existing {
		merged = append(merged, r.Clone())
	}
	return merged, len(fresh)
}
