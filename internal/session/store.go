package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/chromatone/internal/security"
)

const (
	handoffFile = "handoff.json.xz"

	// MaxHandoffSize caps the decompressed hand-off document.
	MaxHandoffSize = 16 << 20
)

// DefaultDir returns <user cache dir>/chromatone/session.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate cache directory: %w", err)
	}
	return filepath.Join(cache, "chromatone", "session"), nil
}

// Store persists a Handoff as xz-compressed JSON in a directory.
type Store struct {
	dir    string
	logger hclog.Logger
	now    func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// Dir returns the session directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the hand-off file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, handoffFile)
}

// Load reads the hand-off. A missing file yields an empty Handoff.
func (s *Store) Load() (*Handoff, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Handoff{}, nil
		}
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	defer f.Close()

	zr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", s.Path(), err)
	}

	data, err := io.ReadAll(security.NewLimitedReader(zr, MaxHandoffSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress session: %w", err)
	}

	var h Handoff
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &h, nil
}

// Save replaces the stored hand-off. The file is written to a temporary name
// and renamed so readers never see a partial document.
func (s *Store) Save(h *Handoff) error {
	if h == nil {
		return errors.New("nil hand-off")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	h.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, handoffFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw, err := xz.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to finish session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}

	s.logger.Debug("session saved", "path", s.Path(), "json_bytes", len(data))
	return nil
}

// Update loads the hand-off, applies fn and saves the result.
func (s *Store) Update(fn func(h *Handoff) error) error {
	h, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(h); err != nil {
		return err
	}
	return s.Save(h)
}

// Clear removes the stored hand-off.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Debug("session cleared", "path", s.Path())
	return nil
}
