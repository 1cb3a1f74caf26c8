package service

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/repository"
)

// DefaultSearchLimit caps results when a caller passes limit <= 0.
const DefaultSearchLimit = 10

type searchIndex struct {
	collections [3][]indexedEntity // players, teams, coaches
}

type indexedEntity struct {
	entity model.EntitySummary
	folded string
}

// SearchService performs case-insensitive substring search over entity
// names. Results keep insertion order: players, then teams, then coaches.
type SearchService struct {
	repo repository.SummaryRepository

	mu    sync.Mutex
	index *searchIndex
}

// NewSearchService creates a SearchService. The index is built lazily.
func NewSearchService(repo repository.SummaryRepository) *SearchService {
	return &SearchService{repo: repo}
}

// BuildIndex snapshots the three entity lists.
func (s *SearchService) BuildIndex() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildLocked()
}

func (s *SearchService) buildLocked() error {
	fold := cases.Fold()
	idx := &searchIndex{}
	for i, load := range []func() ([]model.EntitySummary, error){
		s.repo.Players, s.repo.Teams, s.repo.Coaches,
	} {
		entities, err := load()
		if err != nil {
			return err
		}
		list := make([]indexedEntity, len(entities))
		for j, e := range entities {
			list[j] = indexedEntity{entity: e, folded: fold.String(e.Name)}
		}
		idx.collections[i] = list
	}
	s.index = idx
	return nil
}

// Reset drops the index so the next search rebuilds it.
func (s *SearchService) Reset() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

// Search returns up to limit entities whose name contains query.
func (s *SearchService) Search(query string, limit int) ([]model.SearchResult, error) {
	if query == "" {
		return []model.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	s.mu.Lock()
	if s.index == nil {
		if err := s.buildLocked(); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	idx := s.index
	s.mu.Unlock()

	needle := cases.Fold().String(query)
	results := make([]model.SearchResult, 0, limit)
	for _, list := range idx.collections {
		for _, ie := range list {
			if !strings.Contains(ie.folded, needle) {
				continue
			}
			results = append(results, toSearchResult(ie.entity))
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

func toSearchResult(e model.EntitySummary) model.SearchResult {
	return model.SearchResult{
		ID:         e.ID,
		Label:      e.Name,
		EntityType: e.EntityType,
		Context: map[string]string{
			"team":     deref(e.Team),
			"position": deref(e.Position),
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
