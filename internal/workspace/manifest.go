package workspace

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Manifest records which files produced a composition: the composed image
// followed by the edited images in display order.
type Manifest struct {
	Composed string
	Edited   []string
}

// Lines returns the manifest as written to disk, one path per line.
func (m Manifest) Lines() []string {
	return append([]string{m.Composed}, m.Edited...)
}

// WriteManifest writes m to path as plain text, overwriting any previous file.
func WriteManifest(path string, m Manifest) error {
	for _, p := range m.Lines() {
		if strings.ContainsAny(p, "\r\n") {
			return fmt.Errorf("failed to write manifest: path %q contains a line break", p)
		}
	}

	var b strings.Builder
	for _, p := range m.Lines() {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest parses a file written by WriteManifest. Blank lines are ignored.
func ReadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	if len(lines) == 0 {
		return Manifest{}, errors.New("empty manifest")
	}
	return Manifest{Composed: lines[0], Edited: lines[1:]}, nil
}
