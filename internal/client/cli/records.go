package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

const thumbSize = 300

func (a *App) List(ctx context.Context) error {
	total := a.catalog.Len()
	if total == 0 {
		printlnFn("No records uploaded yet")
		return nil
	}

	recs := a.catalog.Query(a.search, a.typeFilter)
	printlnFn(fmt.Sprintf("%d of %d documents%s", len(recs), total, a.viewSuffix()))
	now := time.Now()
	for _, r := range recs {
		printlnFn(formatRow(r, now))
	}
	return nil
}

func (a *App) viewSuffix() string {
	var parts []string
	if a.search != "" {
		parts = append(parts, fmt.Sprintf("search %q", a.search))
	}
	if a.typeFilter != "" && a.typeFilter != models.CategoryAll {
		parts = append(parts, "type "+a.typeFilter)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// Search sets the name filter and lists; no argument clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	a.search = strings.Join(args, " ")
	return a.List(ctx)
}

// Filter sets the category filter and lists; no argument means all.
func (a *App) Filter(ctx context.Context, args []string) error {
	a.typeFilter = models.CategoryAll
	if len(args) > 0 {
		a.typeFilter = args[0]
	}
	return a.List(ctx)
}

func (a *App) Types(ctx context.Context) error {
	var b strings.Builder
	for i, c := range a.catalog.DistinctCategories() {
		if i > 0 {
			b.WriteString("  ")
		}
		if strings.EqualFold(c, a.typeFilter) || (c == models.CategoryAll && a.typeFilter == "") {
			b.WriteString("[" + c + "]")
		} else {
			b.WriteString(c)
		}
	}
	printlnFn(b.String())
	return nil
}

func (a *App) lookup(args []string, usage string) (models.Record, error) {
	if len(args) == 0 {
		return models.Record{}, fmt.Errorf("%w: %s", errUsage, usage)
	}
	rec, ok := a.catalog.Get(args[0])
	if !ok {
		return models.Record{}, fmt.Errorf("no record with id %s", args[0])
	}
	return rec, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	rec, err := a.lookup(args, "show <id>")
	if err != nil {
		return err
	}

	printlnFn("Name:    ", rec.Name)
	printlnFn("ID:      ", rec.ID)
	printlnFn("Type:    ", rec.Category)
	printlnFn("Format:  ", rec.Format)
	printlnFn("Size:    ", FormatSize(rec.SizeBytes))
	printlnFn("Added:   ", FormatAge(rec, time.Now()))
	if rec.Asset != nil {
		printlnFn("Asset:   ", rec.Asset.RemoteID)
	} else {
		printlnFn("Asset:    none (demo record)")
	}
	return nil
}

func (a *App) View(ctx context.Context, args []string) error {
	if _, err := a.lookup(args, "view <id>"); err != nil {
		return err
	}
	u, err := a.records.ViewURL(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(u)
	return nil
}

func (a *App) Thumb(ctx context.Context, args []string) error {
	if _, err := a.lookup(args, "thumb <id>"); err != nil {
		return err
	}
	u, err := a.records.ThumbnailURL(args[0], thumbSize, thumbSize)
	if err != nil {
		return err
	}
	printlnFn(u)
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	if _, err := a.lookup(args, "download <id>"); err != nil {
		return err
	}
	path, err := a.records.Download(ctx, args[0], a.config.DownloadDir)
	if err != nil {
		return err
	}
	printlnFn("Saved to", path)
	return nil
}

// Delete removes a record from the list after confirmation. The stored
// file stays on the asset host.
func (a *App) Delete(ctx context.Context, args []string) error {
	rec, err := a.lookup(args, "delete <id>")
	if err != nil {
		return err
	}

	ok, err := Confirm(a.lines, fmt.Sprintf("Are you sure you want to delete %q?", rec.Name), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if _, err := a.catalog.Remove(ctx, rec.ID); err != nil {
		return fmt.Errorf("record removed from the list but not saved: %w", err)
	}
	printlnFn("Deleted", rec.Name)
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: export <file>", errUsage)
	}
	n, err := a.records.Export(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Exported %d records to %s", n, args[0]))
	return nil
}

func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: import <file>", errUsage)
	}
	n, err := a.records.Import(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Imported %d new records", n))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	var buf bytes.Buffer
	if err := a.metrics.Dump(&buf); err != nil {
		return err
	}
	printlnFn(strings.TrimRight(buf.String(), "\n"))
	return nil
}
