package cli

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func size(n int64) *int64 { return &n }

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   *int64
		want string
	}{
		{nil, "Unknown size"},
		{size(0), "Unknown size"},
		{size(512), "512 B"},
		{size(1023), "1023 B"},
		{size(1024), "1.0 KB"},
		{size(1536), "1.5 KB"},
		{size(1024 * 1024), "1.0 MB"},
		{size(10 << 20), "10.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in))
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	at := func(d time.Time) models.Record { return models.Record{CreatedAt: d} }

	assert.Equal(t, "Recently", FormatAge(models.Record{}, now))
	assert.Equal(t, "2 days ago", FormatAge(models.Record{Added: "2 days ago"}, now))
	assert.Equal(t, "Today", FormatAge(at(now.Add(-14*time.Hour)), now))
	assert.Equal(t, "Yesterday", FormatAge(at(time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)), now))
	assert.Equal(t, "3 days ago", FormatAge(at(time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)), now))
	assert.Equal(t, "6 days ago", FormatAge(at(time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)), now))
	assert.Equal(t, "Mar 3, 2025", FormatAge(at(time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)), now))
}

func TestFormatAge_UsesNowLocation(t *testing.T) {
	tz := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, tz)
	// 23:00 UTC on the 9th is already the 10th in UTC+10
	rec := models.Record{CreatedAt: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Today", FormatAge(rec, now))
}

func TestFormatTask(t *testing.T) {
	assert.Equal(t, "success   100%  a.pdf", formatTask(models.UploadTask{FileName: "a.pdf", Status: models.TaskSuccess, Progress: 100}))
	assert.Equal(t, "error       0%  b.pdf  (boom)", formatTask(models.UploadTask{FileName: "b.pdf", Status: models.TaskError, Error: "boom"}))
}

func TestUploadHint(t *testing.T) {
	assert.NotEmpty(t, uploadHint("Invalid upload preset"))
	assert.Empty(t, uploadHint("File too large (max 10MB)"))
}
