package index

import (
	"testing"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func ids(rs []models.Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestMerge(t *testing.T) {
	existing := []models.Record{{ID: "3", Name: "c"}, {ID: "1", Name: "a"}}
	incoming := []models.Record{{ID: "5", Name: "e"}, {ID: "1", Name: "a-changed"}, {ID: "4", Name: "d"}, {ID: "5", Name: "dup"}}

	merged, added := Merge(existing, incoming)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"5", "4", "3", "1"}, ids(merged))
	assert.Equal(t, "a", merged[3].Name, "existing records win")
	assert.Equal(t, "e", merged[0].Name)
}

func TestMerge_Empty(t *testing.T) {
	merged, added := Merge(nil, nil)
	assert.Zero(t, added)
	assert.Empty(t, merged)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	existing := []models.Record{{ID: "1", Name: "a", Asset: &models.AssetRef{RemoteID: "r"}}}
	merged, _ := Merge(existing, nil)
	merged[0].Asset.RemoteID = "changed"
	assert.Equal(t, "r", existing[0].Asset.RemoteID)
}
