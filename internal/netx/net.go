package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrStatus marks a response that arrived with a non-200 status.
var ErrStatus = errors.New("unexpected status")

const maxErrorBody = 4 << 10

// OpenURL issues a GET for url and returns the response body on 200 OK.
// The caller must close it.
func OpenURL(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: download failed: %s; body: %s", ErrStatus, resp.Status, string(b))
	}
	return resp.Body, nil
}

// Download copies the body of url into w.
func Download(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	body, err := OpenURL(ctx, client, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()
	return io.Copy(w, body)
}
