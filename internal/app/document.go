package app

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/young-ok-sin/pdf-extractor/internal/classify"
	"github.com/young-ok-sin/pdf-extractor/internal/normalize"
	"github.com/young-ok-sin/pdf-extractor/internal/pdf"
	"github.com/young-ok-sin/pdf-extractor/internal/segment"
	"github.com/young-ok-sin/pdf-extractor/internal/sink"
)

// pageSource is the slice of the PDF backend the pipeline depends on.
// pdf.Document satisfies it; tests substitute in-memory pages.
type pageSource interface {
	NumPages() int
	PageText(n int) string
	Close() error
}

// exclusion tags a document-level failure with its record fields. A nil
// exclusion means the document was accepted.
type exclusion struct {
	reason string
	detail string
}

// pipeline processes one document at a time through classification and
// sentence extraction.
type pipeline struct {
	norm         *normalize.Normalizer
	seg          *segment.Segmenter
	cls          *classify.Classifier
	out          sink.Sink
	minRaw       int
	minCleaned   int
	emitOriginal bool
	open         func(path string) (pageSource, error)
}

func newPipeline(cfg Config, out sink.Sink) *pipeline {
	return &pipeline{
		norm: normalize.New(normalize.Config{
			AllowSlash:       cfg.Preset.AllowSlash,
			StripNumericRuns: cfg.Preset.StripNumericRuns,
		}),
		seg:          segment.New(cfg.Preset.Abbreviations),
		cls:          classify.NewClassifier(cfg.Preset.CountHangul),
		out:          out,
		minRaw:       cfg.MinRawLength,
		minCleaned:   cfg.MinCleanedLength,
		emitOriginal: cfg.Preset.EmitOriginal,
		open: func(path string) (pageSource, error) {
			return pdf.Open(path)
		},
	}
}

// process runs one document through the pipeline: open, extract page texts,
// classify the whole document, then emit sentence rows page by page. It
// returns the number of sentences written, or a non-nil exclusion; never
// both. The document handle is released on every exit path.
func (p *pipeline) process(path, docID, docType string) (int, *exclusion) {
	doc, err := p.open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrCorrupt) {
			return 0, &exclusion{reason: "corrupted PDF file", detail: err.Error()}
		}
		return 0, &exclusion{reason: "failed to open PDF", detail: err.Error()}
	}
	defer doc.Close()

	// extract once; a failed page is an empty string and contributes nothing
	pages := make([]string, doc.NumPages())
	for i := range pages {
		pages[i] = doc.PageText(i)
	}

	// full-document text, page-wise normalized, used only for classification
	var full strings.Builder
	for _, raw := range pages {
		if raw == "" {
			continue
		}
		full.WriteString(p.norm.Clean(raw))
		full.WriteString("\n")
	}

	if verdict := p.cls.Check(full.String()); !verdict.Accepted {
		return 0, &exclusion{reason: verdict.Reason}
	}

	written := 0
	for i, raw := range pages {
		if raw == "" {
			continue
		}

		sentenceNo := 0
		for _, candidate := range p.seg.Split(raw) {
			if utf8.RuneCountInString(candidate) < p.minRaw {
				continue
			}

			content := p.norm.Clean(candidate)
			if utf8.RuneCountInString(content) < p.minCleaned {
				continue
			}

			rec := sink.Sentence{
				DocID:      docID,
				Type:       docType,
				PageNo:     i + 1,
				SentenceNo: sentenceNo + 1,
				Content:    content,
			}
			if p.emitOriginal {
				rec.Original = candidate
			}

			if err := p.out.WriteSentence(rec); err != nil {
				// row-level failure: skip the sentence, keep the document;
				// the number is not consumed, so written rows stay dense
				slog.Warn("failed to write sentence row",
					"doc_id", docID, "page", i+1, "sentence", rec.SentenceNo, "error", err)
				continue
			}
			sentenceNo++
			written++
		}
	}

	if written == 0 {
		return 0, &exclusion{reason: "no sentences extracted"}
	}

	return written, nil
}
