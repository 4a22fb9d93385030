package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/khel-store/khel/internal/errors"
)

// Namespace selects which of the two independent session slots a store
// reads and writes. The user and admin portals never share a slot.
type Namespace string

const (
	// NamespaceUser is the regular store-member session slot
	NamespaceUser Namespace = "user"
	// NamespaceAdmin is the administrative portal session slot
	NamespaceAdmin Namespace = "admin"
)

// filename returns the session file name for the namespace.
func (n Namespace) filename() string {
	if n == NamespaceAdmin {
		return "admin_session.json"
	}
	return "session.json"
}

// Store persists the composite session record durably across process
// restarts. A load never observes a token without its paired identity:
// both live in a single record written atomically.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore keeps the session record as a JSON file under the khel
// configuration directory.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the given namespace rooted at dir.
func NewFileStore(dir string, ns Namespace) *FileStore {
	return &FileStore{path: filepath.Join(dir, ns.filename())}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored session. Returns a STORE-001 coded error (see
// IsNoSession) when no session exists.
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.New(kerrors.ErrCodeStoreNotFound, "no stored session")
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeStoreReadFailed,
			fmt.Sprintf("read session file %s", s.path), err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeStoreCorrupt,
			fmt.Sprintf("decode session file %s", s.path), err)
	}

	// A record without a token is torn or hand-edited; treat it as corrupt
	// rather than hydrating a half-session.
	if sess.Token == "" {
		return nil, kerrors.New(kerrors.ErrCodeStoreCorrupt,
			fmt.Sprintf("session file %s has no token", s.path))
	}

	return &sess, nil
}

// Save writes the session record atomically: marshal to a temp file in the
// same directory, then rename over the target. The token and identity can
// never be observed apart.
func (s *FileStore) Save(sess *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "create session directory", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "marshal session", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "create temp session file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "write temp session file", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "chmod temp session file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed, "close temp session file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed,
			fmt.Sprintf("write session file %s", s.path), err)
	}

	return nil
}

// Clear removes the stored session. Clearing an already-empty store is not
// an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return kerrors.Wrap(kerrors.ErrCodeStoreWriteFailed,
			fmt.Sprintf("remove session file %s", s.path), err)
	}
	return nil
}

// IsNoSession reports whether err means the store holds no session.
func IsNoSession(err error) bool {
	return kerrors.CodeOf(err) == kerrors.ErrCodeStoreNotFound
}
