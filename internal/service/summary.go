// Package service composes repository reads into the views the CLI and
// HTTP API serve: point lookups, comparisons, search and league pages.
package service

import (
	"log/slog"
	"sort"

	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/repository"
)

// SummaryService delegates entity lookups to the repository.
type SummaryService struct {
	repo   repository.SummaryRepository
	logger *slog.Logger
}

// NewSummaryService creates a SummaryService. A nil logger uses slog.Default.
func NewSummaryService(repo repository.SummaryRepository, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{repo: repo, logger: logger}
}

// Player returns the player with id or an ErrNotFound error.
func (s *SummaryService) Player(id string) (model.EntitySummary, error) {
	return s.repo.PlayerByID(id)
}

// Team returns the team with id or an ErrNotFound error.
func (s *SummaryService) Team(id string) (model.EntitySummary, error) {
	return s.repo.TeamByID(id)
}

// Coach returns the coach with id or an ErrNotFound error.
func (s *SummaryService) Coach(id string) (model.EntitySummary, error) {
	return s.repo.CoachByID(id)
}

// Entity dispatches on entity type.
func (s *SummaryService) Entity(t model.EntityType, id string) (model.EntitySummary, error) {
	switch t {
	case model.EntityTeam:
		return s.Team(id)
	case model.EntityCoach:
		return s.Coach(id)
	default:
		return s.Player(id)
	}
}

// Compare collects the resolvable players among ids. Ids that fail to
// resolve are skipped.
func (s *SummaryService) Compare(ids []string, advanced bool) model.ComparisonView {
	view := model.ComparisonView{
		Entities:               make([]model.EntitySummary, 0, len(ids)),
		MetricKeys:             []string{},
		AdvancedMetricsEnabled: advanced,
	}

	keys := make(map[string]struct{})
	for _, id := range ids {
		p, err := s.Player(id)
		if err != nil {
			s.logger.Debug("compare: skipping entity", "id", id, "error", err)
			continue
		}
		view.Entities = append(view.Entities, p)
		for k := range p.Stats {
			keys[k] = struct{}{}
		}
	}

	for k := range keys {
		view.MetricKeys = append(view.MetricKeys, k)
	}
	sort.Strings(view.MetricKeys)
	return view
}
