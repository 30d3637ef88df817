// Package personalize rewrites the project template for a new project name.
//
// The template ships with a placeholder project token in a fixed list of files
// and as the name of its Django module directory. Apply replaces every literal
// occurrence of the token and renames the directory.
package personalize

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Personalizer rewrites a checkout of the template.
type Personalizer struct {
	// Root is the checkout directory.
	Root string

	// Token is the placeholder project name.
	Token string

	// Files are relative to Root.
	Files []string
}

// Result summarizes what Apply changed.
type Result struct {
	// Rewritten lists the files that contained the token.
	Rewritten []string

	// ModuleDir is the new module directory, empty if none was renamed.
	ModuleDir string

	// AlreadyApplied is set when the checkout was personalized by an
	// earlier run and nothing was touched.
	AlreadyApplied bool
}

// Apply rewrites the files and renames the module directory to name.
//
// Every file is read and transformed before any is written, so a missing or
// unreadable file fails the step with nothing changed. Each file is then
// replaced through a temporary file and a rename, which leaves it either
// fully old or fully new if a later write fails.
func (p *Personalizer) Apply(name string) (*Result, error) {
	result := &Result{}
	if name == p.Token {
		log.Printf("[Personalize] Project name matches template token %q, nothing to do", name)
		return result, nil
	}
	if p.alreadyApplied(name) {
		log.Printf("[Personalize] %s already renamed to %s, skipping", p.Token, name)
		result.AlreadyApplied = true
		return result, nil
	}

	type pending struct {
		path string
		data []byte
		mode fs.FileMode
	}

	var writes []pending
	for _, rel := range p.Files {
		path := filepath.Join(p.Root, rel)
		// #nosec G304 -- paths come from the validated template file list
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rel, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", rel, err)
		}

		replaced := bytes.ReplaceAll(data, []byte(p.Token), []byte(name))
		if bytes.Equal(replaced, data) {
			continue
		}
		writes = append(writes, pending{path: path, data: replaced, mode: info.Mode().Perm()})
		result.Rewritten = append(result.Rewritten, rel)
	}

	for _, w := range writes {
		if err := replaceFile(w.path, w.data, w.mode); err != nil {
			return result, err
		}
		log.Printf("[Personalize] Rewrote %s", w.path)
	}

	moduleDir, err := p.renameModule(name)
	if err != nil {
		return result, err
	}
	result.ModuleDir = moduleDir

	return result, nil
}

// alreadyApplied reports whether Root/name exists as a directory and
// Root/Token does not, which is the state a completed Apply leaves behind.
func (p *Personalizer) alreadyApplied(name string) bool {
	if _, err := os.Stat(filepath.Join(p.Root, p.Token)); !errors.Is(err, fs.ErrNotExist) {
		return false
	}
	info, err := os.Stat(filepath.Join(p.Root, name))
	return err == nil && info.IsDir()
}

// renameModule renames Root/Token to Root/name when the former exists.
func (p *Personalizer) renameModule(name string) (string, error) {
	from := filepath.Join(p.Root, p.Token)
	to := filepath.Join(p.Root, name)

	info, err := os.Stat(from)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat module directory %s: %w", from, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("module path %s is not a directory", from)
	}

	if _, err := os.Stat(to); err == nil {
		return "", fmt.Errorf("cannot rename %s: %s already exists", from, to)
	}

	if err := os.Rename(from, to); err != nil {
		return "", fmt.Errorf("failed to rename module directory: %w", err)
	}
	log.Printf("[Personalize] Renamed %s to %s", from, to)
	return to, nil
}

// replaceFile atomically replaces path with data.
func replaceFile(path string, data []byte, mode fs.FileMode) error {
	tmpfile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmpfile.Name()

	if _, err := tmpfile.Write(data); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpfile.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
