package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docportal/internal/filex"
)

const (
	sessionDirName  = "docportal"
	sessionFileName = "session"
)

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// sessionStore keeps the portal session token in a private file.
type sessionStore struct {
	base string
}

func newSessionStore(dir string) (*sessionStore, error) {
	if dir != "" {
		return &sessionStore{base: dir}, nil
	}
	base, err := userConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return &sessionStore{base: filepath.Join(base, sessionDirName)}, nil
}

func (s *sessionStore) path() string {
	return filepath.Join(s.base, sessionFileName)
}

// Load returns the stored token or "" when there is none.
func (s *sessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *sessionStore) Save(token string) error {
	dir, err := filex.EnsureSubdDir(filepath.Dir(s.base), filepath.Base(s.base))
	if err != nil {
		return err
	}
	return filex.WriteFilePrivate(filepath.Join(dir, sessionFileName), []byte(token+"\n"))
}

func (s *sessionStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
