package checks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFS loads checks from an embed.FS or any fs.FS. Files are visited in
// lexical order and documents within a file in source order, so the resulting
// slice is deterministic.
func LoadFromFS(fsys fs.FS) ([]Raw, error) {
	var all []Raw
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		raws, err := parseMultiDocYAML(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all = append(all, raws...)
		return nil
	})
	return all, err
}

// maxCheckFileSize is the maximum size for a single YAML check file (1 MB).
const maxCheckFileSize = 1 << 20

// LoadFromDir loads checks from a directory on disk. Oversized files are
// skipped with a warning on stderr.
func LoadFromDir(dir string) ([]Raw, error) {
	var all []Raw
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isYAML(path) {
			return nil
		}
		if info.Size() > maxCheckFileSize {
			fmt.Fprintf(os.Stderr, "warning: skipping oversized check file %s (%d bytes, max %d)\n", path, info.Size(), maxCheckFileSize)
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		raws, err := parseMultiDocYAML(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all = append(all, raws...)
		return nil
	})
	return all, err
}

// parseMultiDocYAML splits a YAML file on "---" boundaries and parses each
// document as one check.
func parseMultiDocYAML(data []byte) ([]Raw, error) {
	var raws []Raw
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var raw Raw
		err := decoder.Decode(&raw)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if raw.ID == "" && raw.Pattern == "" {
			continue // empty document
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}
