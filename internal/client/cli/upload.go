package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/filex"
)

var errUsage = errors.New("wrong arguments")

// Upload sends the files at args to the asset host and adds each success
// to the list.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: upload <file> [file...]", errUsage)
	}

	blobs := make([]models.Blob, 0, len(args))
	for _, p := range args {
		b, err := filex.OpenBlob(p)
		if err != nil {
			printlnFn("Skipping", p+":", err)
			continue
		}
		blobs = append(blobs, b)
	}
	if len(blobs) == 0 {
		return nil
	}
	if len(blobs) > a.config.MaxFiles {
		printlnFn(fmt.Sprintf("Only the first %d files will be uploaded", a.config.MaxFiles))
	}

	res := a.uploads.Submit(ctx, blobs, a.config.MaxFiles)

	hinted := false
	for _, t := range res.Tasks {
		switch t.Status {
		case models.TaskSuccess:
			printlnFn("Successfully uploaded", t.FileName)
		case models.TaskError:
			printlnFn(fmt.Sprintf("Upload failed: %s: %s", t.FileName, t.Error))
			if h := uploadHint(t.Error); h != "" && !hinted {
				printlnFn(h)
				hinted = true
			}
		}
	}
	if len(res.Tasks) > 1 {
		printlnFn(fmt.Sprintf("%d of %d files uploaded", len(res.Added), len(res.Tasks)))
	}
	return nil
}

func (a *App) Progress(ctx context.Context) error {
	tasks := a.uploads.Tasks()
	if len(tasks) == 0 {
		printlnFn("No uploads in progress")
		return nil
	}
	for _, t := range tasks {
		printlnFn(formatTask(t))
	}
	return nil
}
