package sink

import (
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
)

const (
	sentencesSheet = "sentences"
	excludedSheet  = "excluded"
)

// xlsxSink writes both streams into one workbook, a sheet per stream. Rows
// accumulate in memory and the workbook is saved on Close.
type xlsxSink struct {
	mu              sync.Mutex
	file            *excelize.File
	path            string
	sentenceRowNo   int
	exclusionRowNo  int
	includeOriginal bool
}

func newXLSXSink(path string, includeOriginal bool) (*xlsxSink, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sentencesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sentences sheet: %w", err)
	}
	if _, err := f.NewSheet(excludedSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating excluded sheet: %w", err)
	}

	s := &xlsxSink{
		file:            f,
		path:            path,
		includeOriginal: includeOriginal,
	}

	if err := s.appendRow(sentencesSheet, &s.sentenceRowNo, toCells(sentenceHeader(includeOriginal))); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.appendRow(excludedSheet, &s.exclusionRowNo, toCells(exclusionHeader)); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// appendRow writes cells into the next row of the sheet. The caller holds
// the lock (or is still single-threaded in the constructor).
func (s *xlsxSink) appendRow(sheet string, rowNo *int, cells []interface{}) error {
	*rowNo++
	cell, err := excelize.CoordinatesToCellName(1, *rowNo)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", *rowNo, err)
	}
	if err := s.file.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row to sheet %s: %w", sheet, err)
	}
	return nil
}

func (s *xlsxSink) WriteSentence(rec Sentence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := []interface{}{rec.DocID, rec.Type, rec.PageNo, rec.SentenceNo}
	if s.includeOriginal {
		cells = append(cells, rec.Original)
	}
	cells = append(cells, rec.Content)

	return s.appendRow(sentencesSheet, &s.sentenceRowNo, cells)
}

func (s *xlsxSink) WriteExclusion(rec Exclusion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendRow(excludedSheet, &s.exclusionRowNo,
		[]interface{}{rec.DocID, rec.Reason, rec.errorDetail()})
}

func (s *xlsxSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saveErr := s.file.SaveAs(s.path)
	if closeErr := s.file.Close(); saveErr == nil {
		saveErr = closeErr
	}
	return saveErr
}
