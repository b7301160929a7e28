package snippet

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
)

//go:embed snippets/*.js
var bundled embed.FS

// DefaultExt is the file extension of bundled snippets.
const DefaultExt = "js"

// ErrNotFound is returned when a requested snippet does not exist in the store.
var ErrNotFound = errors.New("snippet not found")

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidID reports whether id is usable as a snippet identifier and filename stem.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Store is a read-only collection of snippets addressable by identifier.
type Store interface {
	Exists(id string) bool
	Read(id string) ([]byte, error)
	Ext() string
}

// FSStore serves snippets from the root of an fs.FS.
type FSStore struct {
	fsys fs.FS
	ext  string
}

// NewFSStore returns a store over fsys whose files carry the given extension.
func NewFSStore(fsys fs.FS, ext string) *FSStore {
	return &FSStore{fsys: fsys, ext: strings.TrimPrefix(ext, ".")}
}

// Bundled returns the store compiled into the binary.
func Bundled() *FSStore {
	sub, err := fs.Sub(bundled, "snippets")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(fmt.Sprintf("snippet: bundled snippets missing: %v", err))
	}
	return NewFSStore(sub, DefaultExt)
}

// Ext returns the extension (without dot) shared by every snippet file.
func (s *FSStore) Ext() string { return s.ext }

// FileName returns the file name used for id in this store.
func (s *FSStore) FileName(id string) string {
	return id + "." + s.ext
}

// Exists reports whether a regular file for id is present.
func (s *FSStore) Exists(id string) bool {
	if !ValidID(id) {
		return false
	}
	info, err := fs.Stat(s.fsys, s.FileName(id))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the raw bytes of snippet id, or an error wrapping ErrNotFound.
func (s *FSStore) Read(id string) ([]byte, error) {
	if !s.Exists(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := fs.ReadFile(s.fsys, s.FileName(id))
	if err != nil {
		return nil, fmt.Errorf("reading snippet %q: %w", id, err)
	}
	return data, nil
}

// List returns the sorted identifiers of every snippet in the store.
func (s *FSStore) List() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing snippets: %w", err)
	}

	suffix := "." + s.ext
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != suffix {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), suffix)
		if ValidID(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
