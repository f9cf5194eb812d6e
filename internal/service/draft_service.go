package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/draft"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository"
)

// DraftService is the persistence glue between the live engine state and the
// database rows observed by the rest of the application.
type DraftService struct {
	gameRepo        repository.GameRepository
	actionRepo      repository.DraftActionRepository
	unavailableRepo repository.UnavailableChampionRepository
}

func NewDraftService(
	gameRepo repository.GameRepository,
	actionRepo repository.DraftActionRepository,
	unavailableRepo repository.UnavailableChampionRepository,
) *DraftService {
	return &DraftService{
		gameRepo:        gameRepo,
		actionRepo:      actionRepo,
		unavailableRepo: unavailableRepo,
	}
}

// SaveGame writes the live game state over its persisted row.
func (s *DraftService) SaveGame(ctx context.Context, seriesID uuid.UUID, live *draft.Game) error {
	record, err := gameRecord(seriesID, live)
	if err != nil {
		return err
	}
	return s.gameRepo.Update(ctx, record)
}

// RecordAction appends one audit row for a committed step.
func (s *DraftService) RecordAction(ctx context.Context, gameID uuid.UUID, stepIndex int, step domain.DraftStep, championID string, byTimeout bool) error {
	return s.actionRepo.Create(ctx, &domain.DraftAction{
		ID:         uuid.New(),
		GameID:     gameID,
		StepIndex:  stepIndex,
		Side:       step.Side,
		Kind:       step.Kind,
		ChampionID: championID,
		ByTimeout:  byTimeout,
		ActionTime: time.Now(),
	})
}

// CompleteGame persists the final game state and folds its picks and bans
// into the series' unavailable-champion records.
func (s *DraftService) CompleteGame(ctx context.Context, seriesID uuid.UUID, live *draft.Game) error {
	if err := s.SaveGame(ctx, seriesID, live); err != nil {
		return err
	}

	collected := draft.CollectUnavailable(live)
	records := make([]*domain.UnavailableChampion, len(collected))
	for i := range collected {
		rec := collected[i]
		rec.ID = uuid.New()
		rec.SeriesID = seriesID
		records[i] = &rec
	}
	return s.unavailableRepo.CreateMany(ctx, records)
}

// AddUnavailable records a single champion for fearless tracking. Used when a
// fill lands on a game whose completion records were already written.
func (s *DraftService) AddUnavailable(ctx context.Context, seriesID uuid.UUID, gameNumber int, side domain.Side, kind domain.ActionKind, championID string) error {
	reason := domain.ReasonPicked
	if kind == domain.ActionBan {
		reason = domain.ReasonBanned
	}
	return s.unavailableRepo.CreateMany(ctx, []*domain.UnavailableChampion{{
		ID:         uuid.New(),
		SeriesID:   seriesID,
		ChampionID: championID,
		FromGame:   gameNumber,
		Side:       side,
		Reason:     reason,
	}})
}

// RestrictedFor computes the fearless set for the given game number from the
// series' accumulated records.
func (s *DraftService) RestrictedFor(ctx context.Context, seriesID uuid.UUID, mode domain.DraftMode, gameNumber int) (map[string]bool, error) {
	if mode == domain.DraftModeNormal {
		return map[string]bool{}, nil
	}
	records, err := s.unavailableRepo.GetBySeriesID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	flat := make([]domain.UnavailableChampion, len(records))
	for i, rec := range records {
		flat[i] = *rec
	}
	return draft.Restricted(flat, mode, gameNumber), nil
}

// CreateGame persists the next pending game of a series.
func (s *DraftService) CreateGame(ctx context.Context, seriesID uuid.UUID, live *draft.Game) error {
	record, err := gameRecord(seriesID, live)
	if err != nil {
		return err
	}
	record.CreatedAt = time.Now()
	return s.gameRepo.Create(ctx, record)
}

// LiveGame rebuilds engine state from a persisted row, attaching the given
// fearless set.
func LiveGame(record *domain.Game, restricted map[string]bool) (*draft.Game, error) {
	live := draft.NewGame(record.ID, record.GameNumber, record.BlueSideTeam, restricted)
	live.Status = record.Status
	live.CurrentStep = record.CurrentStep
	live.StartedAt = record.StartedAt
	live.CompletedAt = record.CompletedAt

	for _, pair := range []struct {
		src []byte
		dst []string
	}{
		{record.BlueBans, live.BlueBans},
		{record.RedBans, live.RedBans},
		{record.BluePicks, live.BluePicks},
		{record.RedPicks, live.RedPicks},
	} {
		var slots []string
		if err := json.Unmarshal(pair.src, &slots); err != nil {
			return nil, err
		}
		copy(pair.dst, slots)
	}

	return live, nil
}

func gameRecord(seriesID uuid.UUID, live *draft.Game) (*domain.Game, error) {
	record := &domain.Game{
		ID:           live.ID,
		SeriesID:     seriesID,
		GameNumber:   live.GameNumber,
		Status:       live.Status,
		CurrentStep:  live.CurrentStep,
		BlueSideTeam: live.BlueSideTeam,
		StartedAt:    live.StartedAt,
		CompletedAt:  live.CompletedAt,
	}

	for _, pair := range []struct {
		src []string
		dst *[]byte
	}{
		{live.BlueBans, (*[]byte)(&record.BlueBans)},
		{live.RedBans, (*[]byte)(&record.RedBans)},
		{live.BluePicks, (*[]byte)(&record.BluePicks)},
		{live.RedPicks, (*[]byte)(&record.RedPicks)},
	} {
		data, err := json.Marshal(pair.src)
		if err != nil {
			return nil, err
		}
		*pair.dst = data
	}

	return record, nil
}
