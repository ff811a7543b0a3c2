package comma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// maxCatalogBytes bounds a downloaded catalog.
const maxCatalogBytes = 4 << 20

// IsURL reports whether src names a remote catalog.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch downloads a catalog and decodes it by the extension of the URL path.
func Fetch(ctx context.Context, rawURL string) ([]Record, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	ext := path.Ext(u.Path)

	resp, err := httpRequest(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected catalog status: %s", resp.Status)
	}
	return decodeByExt(ext, io.LimitReader(resp.Body, maxCatalogBytes))
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
