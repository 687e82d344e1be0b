package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces a client-supplied filename to a safe flat
// name under the uploads directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// SaveLogo stores a design logo, removing the previous file when it is
// being replaced. One logo file is active per design. Returns the
// stored filename.
func (s *Store) SaveLogo(previousFilename, filename string, content []byte) (string, error) {
	safe := SanitizeFilename(filename)
	if safe == "" {
		return "", fmt.Errorf("invalid logo filename %q", filename)
	}
	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		return "", err
	}
	if previousFilename != "" && previousFilename != safe {
		s.RemoveLogo(previousFilename)
	}
	if err := os.WriteFile(filepath.Join(s.uploadsDir, safe), content, 0644); err != nil {
		return "", err
	}
	return safe, nil
}

// RemoveLogo deletes a stored logo file; a missing file is not an error.
func (s *Store) RemoveLogo(filename string) {
	safe := SanitizeFilename(filename)
	if safe == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.uploadsDir, safe)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove logo", "filename", safe, "error", err)
	}
}

// LogoPath returns the absolute path of a stored logo, or "" when the
// file does not exist.
func (s *Store) LogoPath(filename string) string {
	if filename == "" {
		return ""
	}
	path := filepath.Join(s.uploadsDir, SanitizeFilename(filename))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
