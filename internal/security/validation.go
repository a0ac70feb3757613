// Package security provides input validation for endpoints, plugin paths,
// generated filenames and size-limited reads.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"unicode"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("size limit exceeded")

// ValidateEndpointURL checks that a classifier base URL is an absolute
// http(s) URL with a host. Loopback and private hosts are allowed since the
// classifier normally runs next to the client.
func ValidateEndpointURL(urlStr string) error {
	if strings.TrimSpace(urlStr) == "" {
		return fmt.Errorf("empty endpoint URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid endpoint URL protocol (only http:// and https:// allowed): %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("endpoint URL must have a hostname")
	}

	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("endpoint URL must not contain a query or fragment")
	}

	return nil
}

// IsPlaintextRemote reports whether urlStr uses plain http to a host that is
// neither loopback nor private. Uploaded photos would cross the network
// unencrypted.
func IsPlaintextRemote(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil || !strings.EqualFold(parsed.Scheme, "http") {
		return false
	}
	return !IsLocalOrPrivateHost(parsed.Hostname())
}

// IsLocalOrPrivateHost checks if a hostname is localhost or a private,
// loopback or link-local IP address.
func IsLocalOrPrivateHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast()
}

// ValidatePluginPath checks that path names an existing regular file with an
// executable bit set.
func ValidatePluginPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty plugin path")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plugin not found: %s", path)
		}
		return fmt.Errorf("failed to stat plugin: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("plugin path is not a regular file: %s", path)
	}

	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}

	return nil
}

// SanitizeFilenamePart makes s safe to embed in a filename. Letters, digits,
// spaces and "-_." are kept, anything else becomes "_". Leading dots are
// removed and an empty result becomes "unknown".
func SanitizeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if strings.TrimSpace(out) == "" {
		return "unknown"
	}
	return out
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bombs when reading compressed session files.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
