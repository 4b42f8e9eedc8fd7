package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Session identifies one shopping cart. The id is an opaque token chosen by
// the client, not a credential.
type Session struct {
	ID string
}

func NewSession() Session {
	return Session{ID: uuid.NewString()}
}

// LoadOrCreateSession reads the session id stored at path. When the file is
// missing or empty a new id is generated and written there.
func LoadOrCreateSession(path string) (Session, error) {
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(b)); id != "" {
			return Session{ID: id}, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	s := NewSession()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Session{}, fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.ID+"\n"), 0o600); err != nil {
		return Session{}, fmt.Errorf("write session: %w", err)
	}
	return s, nil
}
