package objstore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/spf13/afero"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrCorrupt  = errors.New("object content does not match its hash")
)

// DefaultLevel is the brotli quality used when none is configured.
const DefaultLevel = 5

// Hash returns the key under which b is stored.
func Hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Store holds objects under Root on FS.
type Store struct {
	FS    afero.Fs
	Root  string
	Level int // brotli quality, 0-11
}

// New returns a Store rooted at root using DefaultLevel.
func New(fs afero.Fs, root string) *Store {
	return &Store{FS: fs, Root: root, Level: DefaultLevel}
}

// Put stores b and returns its hash.
func (s *Store) Put(b []byte) (string, error) {
	hash := Hash(b)
	finalPath := s.objectPath(hash)

	if ok, err := afero.Exists(s.FS, finalPath); err != nil {
		return "", err
	} else if ok {
		return hash, nil
	}

	var compressed bytes.Buffer
	w := brotli.NewWriterLevel(&compressed, s.Level)
	if _, err := w.Write(b); err != nil {
		return "", fmt.Errorf("failed to compress object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close brotli writer: %w", err)
	}

	dir := filepath.Dir(finalPath)
	if err := s.FS.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := afero.TempFile(s.FS, dir, "obj-tmp-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = s.FS.Remove(tmpName)
	}()

	if _, err := tmp.Write(compressed.Bytes()); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := s.FS.Rename(tmpName, finalPath); err != nil {
		return "", err
	}

	return hash, nil
}

// Get returns the object stored under hash.
func (s *Store) Get(hash string) ([]byte, error) {
	if err := validateHash(hash); err != nil {
		return nil, err
	}

	f, err := s.FS.Open(s.objectPath(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, hash, err)
	}
	if Hash(b) != hash {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, hash)
	}

	return b, nil
}

// Has reports whether an object is stored under hash. It does not verify the content.
func (s *Store) Has(hash string) (bool, error) {
	if err := validateHash(hash); err != nil {
		return false, err
	}
	return afero.Exists(s.FS, s.objectPath(hash))
}

func (s *Store) objectPath(hash string) string {
	return filepath.Join(s.Root, "objects", hash[:2], hash[2:])
}

func validateHash(hash string) error {
	if len(hash) != sha256.Size*2 {
		return fmt.Errorf("hash %q: want %d hex digits", hash, sha256.Size*2)
	}
	if strings.Trim(hash, "0123456789abcdef") != "" {
		return fmt.Errorf("hash %q is not lowercase hex", hash)
	}
	return nil
}
