package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// resolveImage loads an image from a local path or an http(s) URL, sniffs
// its MIME type from the magic bytes and returns the type together with the
// base64-encoded payload. All failures happen before any generation call.
func resolveImage(ctx context.Context, hc *http.Client, source string) (string, string, error) {
	var buf []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return "", "", fmt.Errorf("build image request: %w", err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			return "", "", fmt.Errorf("fetch image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", "", fmt.Errorf("%w: status %d", ErrImageDownload, resp.StatusCode)
		}
		buf, err = io.ReadAll(resp.Body)
		if err != nil {
			return "", "", fmt.Errorf("read image body: %w", err)
		}
	} else {
		var err error
		buf, err = os.ReadFile(source)
		if err != nil {
			return "", "", fmt.Errorf("read image file: %w", err)
		}
	}

	mt := mimetype.Detect(buf)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", fmt.Errorf("%w: detected %s", ErrImageFormat, mt.String())
	}
	return mt.String(), base64.StdEncoding.EncodeToString(buf), nil
}
