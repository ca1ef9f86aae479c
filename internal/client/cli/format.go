package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

// FormatSize renders a byte count the way the records list shows it.
func FormatSize(bytes *int64) string {
	if bytes == nil || *bytes <= 0 {
		return "Unknown size"
	}
	b := *bytes
	switch {
	case b < 1024:
		return fmt.Sprintf("%d B", b)
	case b < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(b)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(b)/(1024*1024))
}

// FormatAge renders when a record was added relative to now, in calendar
// days of now's location. Records without a timestamp show their legacy
// label, or "Recently".
func FormatAge(rec models.Record, now time.Time) string {
	if rec.CreatedAt.IsZero() {
		if rec.Added != "" {
			return rec.Added
		}
		return "Recently"
	}

	days := calendarDays(rec.CreatedAt.In(now.Location()), now)
	if days < 0 {
		days = -days
	}
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return rec.CreatedAt.In(now.Location()).Format("Jan 2, 2006")
}

func calendarDays(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func formatRow(rec models.Record, now time.Time) string {
	return fmt.Sprintf("%-36s  %-8s  %-12s  %-12s  %s",
		rec.ID, rec.Category, FormatSize(rec.SizeBytes), FormatAge(rec, now), rec.Name)
}

func formatTask(t models.UploadTask) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-9s %3d%%  %s", t.Status, t.Progress, t.FileName)
	if t.Error != "" {
		fmt.Fprintf(&b, "  (%s)", t.Error)
	}
	return b.String()
}

// uploadHint suggests a fix for host errors that point at configuration.
func uploadHint(msg string) string {
	if strings.Contains(strings.ToLower(msg), "preset") {
		return "Hint: check CLOUDINARY_UPLOAD_PRESET; the preset must exist and allow unsigned uploads."
	}
	return ""
}
