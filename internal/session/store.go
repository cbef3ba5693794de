package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mascotacare/vetcli/internal/model"
	"github.com/mascotacare/vetcli/pkg/security"
)

// storeSalt keys the scrypt derivation; stable so the session file can
// be reopened across runs.
var storeSalt = []byte("vetcli-session-v1")

// Store persists the session to a single encrypted file.
type Store struct {
	path      string
	encryptor security.Encryptor
}

type persisted struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// NewStore builds a file store. The secret is stretched into the
// encryption key; an empty secret is rejected so sessions are never
// written in the clear.
func NewStore(path, secret string) (*Store, error) {
	enc, err := security.NewDerivedEncryptor([]byte(secret), storeSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to build session encryptor: %w", err)
	}
	return &Store{path: path, encryptor: enc}, nil
}

// Load reads the persisted session into s. A missing file is a normal
// logged-out state, not an error.
func (st *Store) Load(s *Session) error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	plain, err := st.encryptor.Decrypt(data)
	if err != nil {
		// Wrong key or corrupted file: treat as logged out rather than
		// locking the user out of the CLI entirely.
		return nil
	}

	var p persisted
	if err := json.Unmarshal(plain, &p); err != nil {
		return nil
	}
	if p.Token == "" || p.User == nil {
		return nil
	}

	s.Set(p.User, p.Token)
	return nil
}

// Save writes the current session, creating the directory if needed.
func (st *Store) Save(s *Session) error {
	p := persisted{Token: s.Token(), User: s.User()}
	plain, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	data, err := st.encryptor.Encrypt(plain)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Delete removes the persisted session on logout.
func (st *Store) Delete() error {
	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
