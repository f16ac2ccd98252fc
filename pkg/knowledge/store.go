package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/pkg/logger"
	"talentbridge-ai/internal/repository/contract"
	"talentbridge-ai/internal/repository/specification"
	"talentbridge-ai/pkg/events"

	"github.com/google/uuid"
)

// Embedder is the slice of the embedding client the store needs.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) []float32
}

// Match is one scored retrieval result.
type Match struct {
	Id       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Score    float64   `json:"score"`
	Category string    `json:"category"`
}

// Meta carries the optional attributes of an indexed pair.
type Meta struct {
	Category string
	Keywords []string
	IsPreset bool
}

// Stats summarizes the knowledge base contents.
type Stats struct {
	TotalRecords int64      `json:"total_records"`
	PresetCount  int64      `json:"preset_count"`
	LearnedCount int64      `json:"learned_count"`
	TopHit       []TopHitQA `json:"top_hit_questions"`
}

type TopHitQA struct {
	Question string `json:"question"`
	HitCount int    `json:"hit_count"`
}

// Store is the long-term semantic Q&A store. Retrieval is a linear
// cosine scan over candidate rows; category acts as a partition key
// that is scoped first and backfilled from the full table.
type Store struct {
	repo           contract.KnowledgeRepository
	embedder       Embedder
	publisher      events.Publisher
	topK           int
	threshold      float64
	dedupThreshold float64
	logger         logger.ILogger
}

func NewStore(repo contract.KnowledgeRepository, embedder Embedder, publisher events.Publisher, topK int, threshold, dedupThreshold float64, lg logger.ILogger) *Store {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if lg == nil {
		lg = logger.NewNopLogger()
	}
	if topK <= 0 {
		topK = 3
	}
	return &Store{
		repo:           repo,
		embedder:       embedder,
		publisher:      publisher,
		topK:           topK,
		threshold:      threshold,
		dedupThreshold: dedupThreshold,
		logger:         lg,
	}
}

// Index stores a question/answer pair. A question whose embedding scores
// at or above the dedup threshold against an existing row in the same
// category updates that row's answer in place instead of inserting a
// duplicate. Returns false only when the write itself fails; a missing
// embedding still inserts the row, it just stays invisible to search.
func (s *Store) Index(ctx context.Context, question, answer string, meta Meta) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}

	vec := s.embedder.GetEmbedding(ctx, question)

	if vec != nil {
		if existing := s.findDuplicate(ctx, vec, meta.Category); existing != nil {
			if err := s.repo.UpdateAnswer(ctx, existing.Id, answer, time.Now()); err != nil {
				s.logger.Error("knowledge", "dedup update failed", map[string]interface{}{
					"record_id": existing.Id.String(),
					"error":     err.Error(),
				})
				return false
			}
			s.publisher.Publish(events.NewKnowledgeIndexed(existing.Id.String(), question, meta.Category, true))
			return true
		}
	}

	record := &entity.KnowledgeRecord{
		Id:        uuid.New(),
		Question:  question,
		Answer:    answer,
		Embedding: vec,
		Category:  meta.Category,
		Keywords:  meta.Keywords,
		IsPreset:  meta.IsPreset,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("knowledge", "insert failed", map[string]interface{}{
			"question": question,
			"error":    err.Error(),
		})
		return false
	}
	s.publisher.Publish(events.NewKnowledgeIndexed(record.Id.String(), question, meta.Category, false))
	return true
}

func (s *Store) findDuplicate(ctx context.Context, vec []float32, category string) *entity.KnowledgeRecord {
	var specs []specification.Specification
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}
	records, err := s.repo.FindAll(ctx, specs...)
	if err != nil {
		s.logger.Warn("knowledge", "dedup probe failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var best *entity.KnowledgeRecord
	bestScore := s.dedupThreshold
	for _, r := range records {
		if score := CosineSimilarity(vec, r.Embedding); score >= bestScore {
			best = r
			bestScore = score
		}
	}
	return best
}

// Search returns the topK rows scoring at or above the threshold for the
// query, best first. Category rows are scanned first and backfilled from
// the whole table when the partition yields fewer than topK. Every
// returned row has its hit counter bumped, deliberately making retrieval
// a non-idempotent read while the ranking itself stays idempotent.
func (s *Store) Search(ctx context.Context, query string, topK int, threshold float64, category string) []Match {
	if topK <= 0 {
		topK = s.topK
	}
	if threshold <= 0 {
		threshold = s.threshold
	}

	vec := s.embedder.GetEmbedding(ctx, query)
	if vec == nil {
		return nil
	}

	var scored []Match
	if category != "" {
		scored = s.scanScored(ctx, vec, threshold, specification.ByCategory{Category: category})
	}
	if len(scored) < topK {
		scored = append(scored, s.scanScored(ctx, vec, threshold)...)
	}

	seen := make(map[uuid.UUID]bool, len(scored))
	unique := scored[:0]
	for _, m := range scored {
		if !seen[m.Id] {
			seen[m.Id] = true
			unique = append(unique, m)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})
	if len(unique) > topK {
		unique = unique[:topK]
	}

	if len(unique) > 0 {
		ids := make([]uuid.UUID, 0, len(unique))
		for _, m := range unique {
			ids = append(ids, m.Id)
		}
		if err := s.repo.RecordHits(ctx, ids, time.Now()); err != nil {
			s.logger.Warn("knowledge", "hit bookkeeping failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		s.publisher.Publish(events.NewKnowledgeHit(query, len(unique), unique[0].Score))
	}
	return unique
}

func (s *Store) scanScored(ctx context.Context, vec []float32, threshold float64, specs ...specification.Specification) []Match {
	records, err := s.repo.FindAll(ctx, specs...)
	if err != nil {
		s.logger.Warn("knowledge", "candidate scan failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	var out []Match
	for _, r := range records {
		if len(r.Embedding) == 0 {
			continue
		}
		score := CosineSimilarity(vec, r.Embedding)
		if score >= threshold {
			out = append(out, Match{
				Id:       r.Id,
				Question: r.Question,
				Answer:   r.Answer,
				Score:    score,
				Category: r.Category,
			})
		}
	}
	return out
}

// BuildContext renders matches as the reference block injected into the
// model prompt. Callers depend on this exact shape, keep it stable.
func BuildContext(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}
	parts := []string{"Here are relevant past Q&A pairs for reference:"}
	for i, m := range matches {
		parts = append(parts,
			fmt.Sprintf("\nreference %d (score: %.2f):", i+1, m.Score),
			"Q: "+m.Question,
			"A: "+m.Answer,
		)
	}
	return strings.Join(parts, "\n")
}

// SearchContext is the common search-then-render path.
func (s *Store) SearchContext(ctx context.Context, query string, category string) string {
	return BuildContext(s.Search(ctx, query, s.topK, s.threshold, category))
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count knowledge records: %w", err)
	}
	preset, err := s.repo.Count(ctx, specification.PresetOnly{})
	if err != nil {
		return nil, fmt.Errorf("count preset records: %w", err)
	}

	top, err := s.repo.FindAll(ctx,
		specification.OrderBy{Field: "hit_count", Desc: true},
		specification.Limit{N: 5},
	)
	if err != nil {
		return nil, fmt.Errorf("load top-hit records: %w", err)
	}

	stats := &Stats{
		TotalRecords: total,
		PresetCount:  preset,
		LearnedCount: total - preset,
	}
	for _, r := range top {
		question := r.Question
		if runes := []rune(question); len(runes) > 50 {
			question = string(runes[:50])
		}
		stats.TopHit = append(stats.TopHit, TopHitQA{Question: question, HitCount: r.HitCount})
	}
	return stats, nil
}
