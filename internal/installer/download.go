package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Team997Coders/frcInstallTool/internal/logger"
)

// downloadChunkSize is how much of the response body is read per write.
const downloadChunkSize = 8 << 10

// Fetcher downloads a URL to a local path and returns the number of bytes written.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) (int64, error)
}

// HTTPFetcher is the Fetcher used for real runs.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	Progress  ProgressFactory
}

// NewHTTPFetcher returns a fetcher using http.DefaultClient.
func NewHTTPFetcher(userAgent string, progress ProgressFactory) *HTTPFetcher {
	return &HTTPFetcher{Client: http.DefaultClient, UserAgent: userAgent, Progress: progress}
}

// Fetch performs one GET of url and streams the body into destPath, replacing
// any existing file. It does not retry.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger.Debug("[DEBUG] GET %s\n", url)
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("failed to GET %s: HTTP status %s", url, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %v\n", cerr)
		}
	}()

	progress := f.Progress
	if progress == nil {
		progress = NoProgress()
	}
	bar := progress(resp.ContentLength, destPath)
	defer bar.Finish()

	written, err := copyChunks(out, resp.Body, bar)
	if err != nil {
		return written, fmt.Errorf("failed to write response to %s: %w", destPath, err)
	}
	logger.Debug("[DEBUG] Downloaded %d bytes to %s\n", written, destPath)
	return written, nil
}

// copyChunks copies src to dst in downloadChunkSize pieces, reporting each
// piece to progress.
func copyChunks(dst io.Writer, src io.Reader, progress Progress) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
			progress.Add(n)
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
