// Package extractor performs type-dispatched content extraction and MIME
// detection on FileRecords produced by the Scanner. It never modifies source
// files. Formats are not probed ahead of time: every supported format's
// extraction function is always attempted, and any per-file failure (for
// example a missing ffprobe binary or an unreadable file) leaves that
// record's excerpt nil and is counted as an extraction error, never a fatal
// error.
package extractor

import (
	"context"
	"log/slog"
	"mime"

	"github.com/localorganizer/organizer/internal/core"
)

// mimeByExtension covers the formats this package understands; anything else
// falls back to application/octet-stream.
var mimeByExtension = map[string]string{
	".txt": "text/plain", ".md": "text/markdown", ".csv": "text/csv",
	".tsv": "text/tab-separated-values", ".json": "application/json",
	".yaml": "application/yaml", ".yml": "application/yaml",
	".xml": "application/xml", ".html": "text/html", ".log": "text/plain",
	".ini": "text/plain", ".sql": "application/sql",
	".pdf": "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png", ".gif": "image/gif",
	".mp3": "audio/mpeg", ".flac": "audio/flac", ".wav": "audio/wav", ".m4a": "audio/mp4",
	".mp4": "video/mp4", ".mkv": "video/x-matroska", ".mov": "video/quicktime", ".avi": "video/x-msvideo",
}

const fallbackMIME = "application/octet-stream"

// Stats aggregates counters produced by Extractor.Process calls.
type Stats struct {
	FilesProcessed  int
	ExtractionErrors int
	ExcerptBytes    int64
}

// Config controls excerpt sizing.
type Config struct {
	// MaxExcerptBytes caps ContentExcerpt. Zero selects DefaultExcerptBytes.
	MaxExcerptBytes int

	// PDFMaxPages bounds how many leading PDF pages are read. Zero selects
	// pdfDefaultMaxPages.
	PDFMaxPages int
}

// Extractor dispatches extraction by normalized extension.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
	stats  Stats
}

// New creates an Extractor with the given Config.
func New(cfg Config) *Extractor {
	if cfg.MaxExcerptBytes <= 0 {
		cfg.MaxExcerptBytes = DefaultExcerptBytes
	}
	return &Extractor{cfg: cfg, logger: slog.Default().With("component", "extractor")}
}

// Stats returns a snapshot of the aggregate counters.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// Process returns a new FileRecord with MIME populated and, when the format
// is understood, ContentExcerpt populated (otherwise nil). The input record
// is never mutated.
func (e *Extractor) Process(ctx context.Context, rec core.FileRecord) core.FileRecord {
	e.stats.FilesProcessed++

	detected := detectMIME(rec.Extension)
	out := rec.WithMIME(detected)

	text, err := e.extractByType(rec)
	if err != nil {
		e.stats.ExtractionErrors++
		e.logger.Debug("extraction failed, leaving excerpt null", "path", rec.Path, "error", err)
		return out.WithExcerpt(nil)
	}
	if text == nil {
		return out.WithExcerpt(nil)
	}

	excerpt := excerptPtr(*text, e.cfg.MaxExcerptBytes)
	e.stats.ExcerptBytes += int64(len(*excerpt))
	return out.WithExcerpt(excerpt)
}

// detectMIME maps a normalized extension to a MIME type, falling back to the
// stdlib mime package's own table and finally to fallbackMIME.
func detectMIME(ext string) string {
	if m, ok := mimeByExtension[ext]; ok {
		return m
	}
	if m := mime.TypeByExtension(ext); m != "" {
		return m
	}
	return fallbackMIME
}

// extractByType dispatches to the format-specific extractor. A nil, nil
// return means the format is recognized as having no text content (or is
// simply unrecognized); this is distinct from an error.
func (e *Extractor) extractByType(rec core.FileRecord) (*string, error) {
	ext := rec.Extension

	switch {
	case isTextExtension(ext):
		text, err := extractText(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case ext == ".pdf":
		text, err := extractPDF(rec.Path, e.cfg.PDFMaxPages)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case ext == ".docx":
		text, err := extractDocx(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case ext == ".pptx":
		text, err := extractPptx(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case ext == ".xlsx":
		text, err := extractXLSX(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case isImageExtension(ext):
		text, err := extractImage(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case isAudioExtension(ext):
		text, err := extractAudio(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	case isVideoExtension(ext):
		text, err := extractVideo(rec.Path)
		if err != nil {
			return nil, err
		}
		return &text, nil

	default:
		return nil, nil
	}
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
var audioExtensions = map[string]bool{".mp3": true, ".flac": true, ".wav": true, ".m4a": true, ".ogg": true}
var videoExtensions = map[string]bool{".mp4": true, ".mkv": true, ".mov": true, ".avi": true, ".webm": true}

func isImageExtension(ext string) bool { return imageExtensions[ext] }
func isAudioExtension(ext string) bool { return audioExtensions[ext] }
func isVideoExtension(ext string) bool { return videoExtensions[ext] }
