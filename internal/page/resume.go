package page

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
)

// ResumeProbe checks whether the resume asset can be downloaded.
type ResumeProbe interface {
	Exists(ctx context.Context) (bool, error)
}

// FileProbe stats the resume on disk.
type FileProbe struct {
	Path string
}

func (p FileProbe) Exists(_ context.Context) (bool, error) {
	info, err := os.Stat(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat resume: %w", err)
	}
	return !info.IsDir(), nil
}

// HTTPProbe issues a HEAD request for a resume hosted elsewhere.
type HTTPProbe struct {
	URL    string
	Client *http.Client
}

func (p HTTPProbe) Exists(ctx context.Context) (bool, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return false, fmt.Errorf("build resume probe: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("probe resume: %w", err)
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
