package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ProgressFunc receives byte counts as an upload advances. total is -1 when
// the size is unknown.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	r        io.Reader
	sent     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// Upload streams content to the device under the same authorization and 401
// redirection contract as Do. The caller aborts by cancelling ctx, which is
// reported as ErrUploadCancelled so it can be told apart from a transport
// failure.
func (r *RedirectingClient) Upload(ctx context.Context, path string, content io.Reader, size int64, progress ProgressFunc) (*http.Response, error) {
	body := &progressReader{r: content, total: size, progress: progress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.client.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if size >= 0 {
		req.ContentLength = size
	}

	token, err := r.client.tokens.Token(ctx)
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.httpc.Do(req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return nil, fmt.Errorf("%w: %v", ErrUploadCancelled, err)
		}
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		r.unauthorized(ctx)
		return nil, ErrUnauthorized
	}
	return resp, nil
}
