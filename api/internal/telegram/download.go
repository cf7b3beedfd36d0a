package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// lazyFile downloads on the first Read.
type lazyFile struct {
	fetch func() ([]byte, error)
	r     io.Reader
	err   error
}

func (f *lazyFile) Read(p []byte) (int, error) {
	if f.r == nil && f.err == nil {
		b, err := f.fetch()
		if err != nil {
			f.err = err
		} else {
			f.r = bytes.NewReader(b)
		}
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.r.Read(p)
}
