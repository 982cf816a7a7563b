// Package filestore manages the on-disk layout shared by the download and
// annotate stages: one JSON document per dictionary in a flat directory.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/text/cases"

	"github.com/healdata/dd-annotator/pkg/jsonx"
)

// DocumentExt is the suffix of dictionary documents, matched case-insensitively.
const DocumentExt = ".json"

var (
	fold        = cases.Fold()
	nonWordChar = regexp.MustCompile(`\W`)
)

// ResetDir removes dir and everything in it, then recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("filestore: remove %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: create %s: %w", dir, err)
	}
	return nil
}

// IsDocument reports whether name ends in DocumentExt, ignoring case.
func IsDocument(name string) bool {
	return strings.HasSuffix(fold.String(name), DocumentExt)
}

// ListDocuments returns the regular files in dir, split into dictionary
// documents and everything else. Both lists are sorted by name.
func ListDocuments(dir string) (docs, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("filestore: read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if IsDocument(e.Name()) {
			docs = append(docs, e.Name())
		} else {
			skipped = append(skipped, e.Name())
		}
	}
	return docs, skipped, nil
}

// DocumentName turns a dictionary identifier into a file name by replacing
// every non-word character with "_" and appending DocumentExt.
func DocumentName(id string) string {
	return nonWordChar.ReplaceAllString(id, "_") + DocumentExt
}

// WriteJSON writes v as indented canonical JSON (sorted keys) to path.
func WriteJSON(path string, v any) error {
	data, err := jsonx.MarshalCanonical(v)
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", path, err)
	}
	return WriteFileAtomic(path, data, 0o644)
}

// WriteRawJSON canonicalizes an already encoded document and writes it to path.
func WriteRawJSON(path string, data []byte) error {
	out, err := jsonx.IndentCanonical(data)
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", path, err)
	}
	return WriteFileAtomic(path, out, 0o644)
}

// WriteFileAtomic writes content to a temporary file next to path and
// renames it into place, so readers never see a partial document.
func WriteFileAtomic(path string, content []byte, mode os.FileMode) error {
	parent := filepath.Dir(path)
	base := filepath.Base(path)

	tempFile, err := os.CreateTemp(parent, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tempFile.Chmod(mode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("filestore: chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("filestore: close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS != "windows" {
			return fmt.Errorf("filestore: rename temp file: %w", err)
		}
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("filestore: remove destination before rename: %w", removeErr)
		}
		if renameErr := os.Rename(tempPath, path); renameErr != nil {
			return fmt.Errorf("filestore: rename temp file after remove: %w", renameErr)
		}
	}
	cleanup = false
	return nil
}
