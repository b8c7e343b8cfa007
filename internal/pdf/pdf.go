// Package pdf wraps the go-fitz (MuPDF) backend behind the small surface the
// pipeline needs: open a file, read page text, close. Page-text extraction is
// best-effort and never fails the caller.
package pdf

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// maxExtractRetries bounds re-attempts for recoverable color-profile errors.
const maxExtractRetries = 3

// ErrCorrupt marks a source file MuPDF recognized but could not parse.
var ErrCorrupt = errors.New("corrupted PDF file")

// Document is an open PDF. Close must be called on every exit path.
type Document struct {
	fz   *fitz.Document
	path string
}

// Open opens a PDF file. A parse failure is wrapped with ErrCorrupt so the
// caller can distinguish corruption from plain open errors.
func Open(path string) (*Document, error) {
	fz, err := fitz.New(path)
	if err != nil {
		if errors.Is(err, fitz.ErrOpenDocument) {
			return nil, fmt.Errorf("%w: %s", ErrCorrupt, path)
		}
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &Document{fz: fz, path: path}, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.fz.NumPage()
}

// PageText extracts the text of the 0-based page. Extraction failures yield
// an empty string after a logged warning; known-transient ICC color-profile
// errors are retried first.
func (d *Document) PageText(n int) string {
	return extractWithRetry(func() (string, error) {
		return d.fz.Text(n)
	}, func(attempt int, err error) {
		slog.Warn("page text extraction failed",
			"path", d.path, "page", n+1, "attempt", attempt, "error", err)
	})
}

// Close releases the underlying MuPDF document.
func (d *Document) Close() error {
	return d.fz.Close()
}

// extractWithRetry runs get up to maxExtractRetries times, retrying only on
// recoverable color-profile errors. Any other error, or exhausted retries,
// reports through warn and returns an empty string.
func extractWithRetry(get func() (string, error), warn func(attempt int, err error)) string {
	for attempt := 1; attempt <= maxExtractRetries; attempt++ {
		text, err := get()
		if err == nil {
			return text
		}
		if isRecoverableColorError(err) && attempt < maxExtractRetries {
			continue
		}
		warn(attempt, err)
		return ""
	}
	return ""
}

// isRecoverableColorError matches the MuPDF ICC failures that occasionally
// succeed on a retry.
func isRecoverableColorError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "cmsOpenProfileFromMem failed") ||
		strings.Contains(msg, "invalid ICC colorspace")
}
