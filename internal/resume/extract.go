// Package resume converts uploaded resume files to plain text for prompting.
package resume

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
)

var (
	ErrUnsupportedType = errors.New("unsupported resume file type")
	ErrEmptyDocument   = errors.New("no text could be extracted from the resume")
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Extract reads a resume from r and returns its text. The filename's
// extension picks the converter.
func Extract(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".pages":
		res, err := docconv.Convert(r, docconv.MimeTypeByExtension(filename), true)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt", ".md", "":
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	text = Normalize(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Normalize trims lines and collapses long runs of blank lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
