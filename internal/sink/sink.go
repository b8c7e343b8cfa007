// Package sink writes the two output streams of a run: accepted sentence
// rows and excluded-document rows. Both streams are append-only; sinks
// serialize writes internally so the pipeline may process documents
// concurrently without coordinating around them.
package sink

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sentence is one accepted output row. SentenceNo restarts at 1 on every
// page; Original is only written when the sink was opened with the original
// column enabled.
type Sentence struct {
	DocID      string
	Type       string
	PageNo     int
	SentenceNo int
	Original   string
	Content    string
}

// Exclusion records why a document produced no sentences. Error holds the
// underlying failure detail, or the literal "None".
type Exclusion struct {
	DocID  string
	Reason string
	Error  string
}

// errorDetail normalizes the free-text error column.
func (e Exclusion) errorDetail() string {
	if e.Error == "" {
		return "None"
	}
	return e.Error
}

// Sink accepts the two output streams. Implementations are safe for
// concurrent use. Close flushes and must be called exactly once.
type Sink interface {
	WriteSentence(s Sentence) error
	WriteExclusion(e Exclusion) error
	Close() error
}

// New opens a sink for the given output path. An .xlsx extension selects a
// single workbook with two sheets; anything else produces two CSV files, the
// exclusions landing in excluded_docs.csv beside the sentences file.
// includeOriginal adds the pre-normalization text column.
func New(outputPath string, includeOriginal bool) (Sink, error) {
	if strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
		return newXLSXSink(outputPath, includeOriginal)
	}

	excludedPath := filepath.Join(filepath.Dir(outputPath), "excluded_docs.csv")
	return newCSVSink(outputPath, excludedPath, includeOriginal)
}

// sentenceHeader returns the column order for the accepted-sentences stream.
func sentenceHeader(includeOriginal bool) []string {
	if includeOriginal {
		return []string{"doc_id", "type", "page_no", "sentence_no", "original", "content"}
	}
	return []string{"doc_id", "type", "page_no", "sentence_no", "content"}
}

// sentenceRow formats one record to match sentenceHeader.
func sentenceRow(s Sentence, includeOriginal bool) []string {
	row := []string{s.DocID, s.Type, fmt.Sprint(s.PageNo), fmt.Sprint(s.SentenceNo)}
	if includeOriginal {
		row = append(row, s.Original)
	}
	return append(row, s.Content)
}

var exclusionHeader = []string{"doc_id", "reason", "error"}
