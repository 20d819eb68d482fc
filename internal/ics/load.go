package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	appLog "monthcal/internal/log"
)

var maxBodyBytes int64 = 10 << 20

// ErrBodyTooLarge is returned when a remote ICS payload exceeds the size limit.
var ErrBodyTooLarge = errors.New("ics body too large")

// Source represents a single ICS source.
type Source struct {
	// ID is an internal identifier (e.g., config ICS ID).
	ID string
	// Path is a local file path or an http(s) URL.
	Path string
}

func (s Source) isRemote() bool {
	return strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://")
}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
}

// Load returns the raw ICS payload of src, reading a local file or fetching
// an http(s) URL.
func Load(ctx context.Context, src Source) ([]byte, error) {
	if src.Path == "" {
		return nil, errors.New("source path is empty")
	}
	if !src.isRemote() {
		return os.ReadFile(src.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Path, nil)
	if err != nil {
		return nil, err
	}

	appLog.Info("ics fetch start", "id", src.ID, "url", redactURL(src.Path))

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", redactURL(src.Path), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, redactURL(src.Path), maxBodyBytes)
	}

	appLog.Info("ics fetch success", "id", src.ID, "url", redactURL(src.Path), "bytes", len(body))
	return body, nil
}

// redactURL hides sensitive parts of an ICS URL for logging purposes.
//
//	https://example.com/path/to/private.ics?token=abcd
//	-> https://example.com/...(redacted)
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := strings.Index(u, "://")
	if i == -1 {
		return "ics://...(redacted)"
	}
	i += 3

	j := strings.IndexByte(u[i:], '/')
	if j == -1 {
		return u + redactedSuffix
	}
	return u[:i+j] + redactedSuffix
}
