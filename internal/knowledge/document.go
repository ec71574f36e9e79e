// ABOUTME: Reference document loading for the add-document command
// ABOUTME: Reads a text file once and reports failures to the caller
package knowledge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxDocumentBytes bounds how much of a document is injected into the conversation
const MaxDocumentBytes = 256 * 1024

// ErrEmptyDocument is returned for documents without any text
var ErrEmptyDocument = errors.New("document is empty")

// Document is a reference file shared into the conversation
type Document struct {
	Name    string
	Path    string
	Content string
}

// Loader reads documents; swapped out in tests
type Loader func(path string) (Document, error)

// LoadDocument reads a UTF-8 text document from disk
func LoadDocument(path string) (Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Document{}, errors.New("document path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading document: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("reading document: %s is a directory", path)
	}
	if info.Size() > MaxDocumentBytes {
		return Document{}, fmt.Errorf("document too large: %d bytes (limit %d)", info.Size(), MaxDocumentBytes)
	}

	data, err := os.ReadFile(path) // #nosec G304 - user-supplied path is the point of the command
	if err != nil {
		return Document{}, fmt.Errorf("reading document: %w", err)
	}
	if !utf8.Valid(data) {
		return Document{}, fmt.Errorf("document %s is not valid UTF-8 text", filepath.Base(path))
	}
	if strings.TrimSpace(string(data)) == "" {
		return Document{}, ErrEmptyDocument
	}

	return Document{
		Name:    filepath.Base(path),
		Path:    path,
		Content: string(data),
	}, nil
}
