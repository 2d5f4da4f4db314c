package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/logger"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/monitoring"

	"go.uber.org/zap"
)

// ErrNoPageStructure signals that an extractor could read the text but
// not its page boundaries; the chunker then falls back to estimated
// pages.
var ErrNoPageStructure = errors.New("document has no recoverable page structure")

// PageExtractor recovers page-segmented text from an uploaded file in a
// single pass. PDF extraction is an external collaborator implementing
// this interface.
type PageExtractor interface {
	// Extract returns page-ordered text. Implementations return
	// ErrNoPageStructure when only the flat text is recoverable, with
	// the flat text as the single returned page.
	Extract(ctx context.Context, r io.Reader, filename string) ([]retrieval.Page, error)
}

// PlainTextExtractor handles .txt, .md and .m files. Form feeds mark
// page boundaries when present; otherwise the whole text comes back as
// one page with ErrNoPageStructure.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(ctx context.Context, r io.Reader, filename string) ([]retrieval.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, util.ErrEmptyDocument
	}

	if !strings.Contains(text, "\f") {
		return []retrieval.Page{{Number: 1, Text: text}}, ErrNoPageStructure
	}

	var pages []retrieval.Page
	for i, part := range strings.Split(text, "\f") {
		pages = append(pages, retrieval.Page{Number: i + 1, Text: part})
	}
	return pages, nil
}

// IngestService turns uploaded documents into the searchable chunk
// corpus. Ingestion is a one-shot batch per document: either the full
// chunk set is stored or none of it is.
type IngestService struct {
	DocumentRepo *repository.DocumentRepository
	Storage      *StorageService
	Extractors   map[string]PageExtractor
	Chunker      *retrieval.Chunker
	Corpus       *CorpusService
}

func NewIngestService(documentRepo *repository.DocumentRepository, storage *StorageService, corpus *CorpusService, cfg config.RetrievalConfig) *IngestService {
	chunker := retrieval.NewChunker(retrieval.ChunkerConfig{
		ChunkSize:    cfg.ChunkSize,
		Overlap:      cfg.ChunkOverlap,
		MinLength:    cfg.MinChunkLength,
		CharsPerPage: cfg.CharsPerPage,
	})

	plain := PlainTextExtractor{}
	return &IngestService{
		DocumentRepo: documentRepo,
		Storage:      storage,
		Extractors: map[string]PageExtractor{
			".pdf": PDFExtractor{},
			".txt": plain,
			".md":  plain,
			".m":   plain,
		},
		Chunker: chunker,
		Corpus:  corpus,
	}
}

// RegisterExtractor plugs in an extractor for an extension, e.g. the
// PDF collaborator.
func (s *IngestService) RegisterExtractor(ext string, e PageExtractor) {
	s.Extractors[strings.ToLower(ext)] = e
}

// Ingest stores the uploaded file, chunks its text and persists the
// chunk set. Empty documents are rejected before anything is stored.
// Other extraction failures are non-fatal: the document is marked
// failed with zero chunks and the course keeps whatever materials it
// already has.
func (s *IngestService) Ingest(ctx context.Context, doc *model.Document, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	doc.Size = int64(len(data))

	fragments, extractErr := s.extractFragments(ctx, doc.Filename, data)
	if errors.Is(extractErr, util.ErrEmptyDocument) {
		return extractErr
	}

	objectKey := "documents/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + "_" + doc.Filename
	url, err := s.Storage.Upload(ctx, objectKey, bytes.NewReader(data), doc.Size, util.MimeOctetStream)
	if err != nil {
		return err
	}
	doc.URL = url
	doc.ObjectKey = objectKey

	if err := s.DocumentRepo.Create(doc); err != nil {
		return err
	}

	if extractErr == nil {
		extractErr = s.storeChunks(doc, fragments)
	}
	if extractErr != nil {
		logger.Log.Warn("document ingestion failed, course continues without it",
			zap.Uint("documentId", doc.ID),
			zap.String("filename", doc.Filename),
			zap.Error(extractErr))
		doc.Status = model.DocumentFailed
		s.DocumentRepo.UpdateStatus(doc.ID, model.DocumentFailed)
		return nil
	}

	s.Corpus.Invalidate(ctx, doc.CourseID)
	return nil
}

// extractFragments runs the extension's extractor over the raw bytes
// and chunks the result. It touches neither storage nor the database.
func (s *IngestService) extractFragments(ctx context.Context, filename string, data []byte) ([]retrieval.Fragment, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := s.Extractors[ext]
	if !ok {
		return nil, errors.New("no extractor for file type " + ext)
	}

	pages, err := extractor.Extract(ctx, bytes.NewReader(data), filename)
	if errors.Is(err, ErrNoPageStructure) {
		return s.Chunker.ChunkWhole(filename, pages[0].Text), nil
	}
	if err != nil {
		return nil, err
	}
	return s.Chunker.ChunkPages(filename, pages), nil
}

func (s *IngestService) storeChunks(doc *model.Document, fragments []retrieval.Fragment) error {
	chunks := make([]model.DocumentChunk, 0, len(fragments))
	maxPage := 0
	for _, f := range fragments {
		if f.Page > maxPage {
			maxPage = f.Page
		}
		chunks = append(chunks, model.DocumentChunk{
			DocumentID:    doc.ID,
			CourseID:      doc.CourseID,
			Filename:      f.Filename,
			Page:          f.Page,
			StartChar:     f.StartChar,
			Content:       f.Content,
			PageEstimated: f.PageEstimated,
		})
	}

	doc.Status = model.DocumentIngested
	doc.PageCount = maxPage
	doc.ChunkCount = len(chunks)

	if err := s.DocumentRepo.ReplaceChunks(doc, chunks); err != nil {
		return err
	}

	monitoring.ChunksIngested.Add(float64(len(chunks)))
	logger.Log.Info("document ingested",
		zap.Uint("documentId", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.PageCount),
		zap.Int("chunks", doc.ChunkCount))
	return nil
}

// Delete removes the document, its chunks and its stored file, then
// invalidates the course corpus.
func (s *IngestService) Delete(ctx context.Context, doc *model.Document) error {
	if err := s.DocumentRepo.Delete(doc.ID); err != nil {
		return err
	}
	if doc.ObjectKey != "" {
		if err := s.Storage.Delete(ctx, doc.ObjectKey); err != nil {
			logger.Log.Warn("stored file removal failed", zap.String("objectKey", doc.ObjectKey), zap.Error(err))
		}
	}
	s.Corpus.Invalidate(ctx, doc.CourseID)
	return nil
}
