package objstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores uploaded files on disk and serves them under /uploads/.
type Local struct {
	Dir           string
	PublicBaseURL string
}

func NewLocal(dir, publicBaseURL string) *Local {
	return &Local{Dir: dir, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Write persists data under a random name keeping the original extension and
// returns the public URL.
func (l *Local) Write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	out := filepath.Join(l.Dir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return l.buildURL("/uploads/" + name), nil
}

// List returns the stored object names matching a prefix.
func (l *Local) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Delete removes the named objects; missing ones are ignored.
func (l *Local) Delete(names ...string) error {
	for _, name := range names {
		err := os.Remove(filepath.Join(l.Dir, filepath.Base(name)))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (l *Local) buildURL(path string) string {
	if l.PublicBaseURL == "" {
		return path
	}
	return l.PublicBaseURL + path
}
