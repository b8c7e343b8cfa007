package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// utf8BOM keeps spreadsheet tools from misreading the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvSink writes sentences and exclusions to two separate CSV files.
type csvSink struct {
	mu              sync.Mutex
	sentencesFile   *os.File
	excludedFile    *os.File
	sentences       *csv.Writer
	excluded        *csv.Writer
	includeOriginal bool
}

func newCSVSink(sentencesPath, excludedPath string, includeOriginal bool) (*csvSink, error) {
	sentencesFile, err := createBOMFile(sentencesPath)
	if err != nil {
		return nil, err
	}

	excludedFile, err := createBOMFile(excludedPath)
	if err != nil {
		sentencesFile.Close()
		return nil, err
	}

	s := &csvSink{
		sentencesFile:   sentencesFile,
		excludedFile:    excludedFile,
		sentences:       csv.NewWriter(sentencesFile),
		excluded:        csv.NewWriter(excludedFile),
		includeOriginal: includeOriginal,
	}

	if err := s.sentences.Write(sentenceHeader(includeOriginal)); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing sentences header: %w", err)
	}
	if err := s.excluded.Write(exclusionHeader); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing exclusions header: %w", err)
	}

	return s, nil
}

// createBOMFile creates the file and writes the UTF-8 byte-order marker.
func createBOMFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing BOM to %s: %w", path, err)
	}
	return f, nil
}

func (s *csvSink) WriteSentence(rec Sentence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sentences.Write(sentenceRow(rec, s.includeOriginal)); err != nil {
		return fmt.Errorf("writing sentence row: %w", err)
	}
	return nil
}

func (s *csvSink) WriteExclusion(rec Exclusion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.excluded.Write([]string{rec.DocID, rec.Reason, rec.errorDetail()}); err != nil {
		return fmt.Errorf("writing exclusion row: %w", err)
	}
	return nil
}

func (s *csvSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sentences.Flush()
	s.excluded.Flush()

	err := s.sentences.Error()
	if e := s.excluded.Error(); err == nil {
		err = e
	}
	if e := s.sentencesFile.Close(); err == nil {
		err = e
	}
	if e := s.excludedFile.Close(); err == nil {
		err = e
	}
	return err
}
