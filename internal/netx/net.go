// Package netx fetches exported reports from presigned object-storage links.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxReportSize caps how much of a report body is read.
const MaxReportSize = 64 << 20

// DownloadFromPresignedURL GETs url and returns the body. Any status other
// than 200 is an error carrying the start of the response body.
func DownloadFromPresignedURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxReportSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxReportSize {
		return nil, fmt.Errorf("download failed: report larger than %d bytes", MaxReportSize)
	}
	return body, nil
}
