package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const corpusCacheTTL = 10 * time.Minute

// CorpusService serves the per-course search index. Fragments are
// cached in Redis across instances and the tokenized index is cached
// in-process, both invalidated whenever the course's documents change.
type CorpusService struct {
	DocumentRepo *repository.DocumentRepository
	Redis        *redis.Client

	mu      sync.RWMutex
	indexes map[uint]*retrieval.Index
}

func NewCorpusService(documentRepo *repository.DocumentRepository, rdb *redis.Client) *CorpusService {
	return &CorpusService{
		DocumentRepo: documentRepo,
		Redis:        rdb,
		indexes:      make(map[uint]*retrieval.Index),
	}
}

func corpusCacheKey(courseID uint) string {
	return "corpus:" + strconv.FormatUint(uint64(courseID), 10)
}

// Index returns the search index for a course, building it from the
// chunk store on first use.
func (s *CorpusService) Index(ctx context.Context, courseID uint) (*retrieval.Index, error) {
	s.mu.RLock()
	idx, ok := s.indexes[courseID]
	s.mu.RUnlock()
	if ok {
		return idx, nil
	}

	fragments, err := s.loadFragments(ctx, courseID)
	if err != nil {
		return nil, err
	}

	idx = retrieval.NewIndex(fragments)

	s.mu.Lock()
	s.indexes[courseID] = idx
	s.mu.Unlock()
	return idx, nil
}

func (s *CorpusService) loadFragments(ctx context.Context, courseID uint) ([]retrieval.Fragment, error) {
	key := corpusCacheKey(courseID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var fragments []retrieval.Fragment
			if err := json.Unmarshal(cached, &fragments); err == nil {
				return fragments, nil
			}
		}
	}

	chunks, err := s.DocumentRepo.FindChunksByCourse(courseID)
	if err != nil {
		return nil, err
	}

	fragments := make([]retrieval.Fragment, 0, len(chunks))
	for _, c := range chunks {
		fragments = append(fragments, retrieval.Fragment{
			Content:       c.Content,
			Filename:      c.Filename,
			Page:          c.Page,
			StartChar:     c.StartChar,
			PageEstimated: c.PageEstimated,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(fragments); err == nil {
			if err := s.Redis.Set(ctx, key, data, corpusCacheTTL).Err(); err != nil {
				logger.Log.Warn("corpus cache write failed", zap.Uint("courseId", courseID), zap.Error(err))
			}
		}
	}
	return fragments, nil
}

// Invalidate drops both cache layers for a course. The next question
// rebuilds the index from the chunk store.
func (s *CorpusService) Invalidate(ctx context.Context, courseID uint) {
	s.mu.Lock()
	delete(s.indexes, courseID)
	s.mu.Unlock()

	if s.Redis != nil {
		if err := s.Redis.Del(ctx, corpusCacheKey(courseID)).Err(); err != nil {
			logger.Log.Warn("corpus cache invalidation failed", zap.Uint("courseId", courseID), zap.Error(err))
		}
	}
}
