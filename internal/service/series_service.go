package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository"
)

type SeriesService struct {
	seriesRepo repository.SeriesRepository
	gameRepo   repository.GameRepository
}

func NewSeriesService(seriesRepo repository.SeriesRepository, gameRepo repository.GameRepository) *SeriesService {
	return &SeriesService{seriesRepo: seriesRepo, gameRepo: gameRepo}
}

type CreateSeriesInput struct {
	CreatedBy        uuid.UUID
	TeamOneName      string
	TeamTwoName      string
	PlannedGames     int
	DraftMode        domain.DraftMode
	BanTimerSeconds  int
	PickTimerSeconds int
}

// CreateSeries persists a new series in lobby state together with its first
// game. The creator's team drafts blue side in game 1; later games go through
// side selection.
func (s *SeriesService) CreateSeries(ctx context.Context, input CreateSeriesInput) (*domain.Series, error) {
	if input.PlannedGames < 1 || input.PlannedGames%2 == 0 {
		return nil, domain.ErrEvenSeriesLength
	}

	blue, red := domain.SideBlue, domain.SideRed
	series := &domain.Series{
		ID:               uuid.New(),
		ShortCode:        generateShortCode(),
		CreatedBy:        input.CreatedBy,
		TeamOneName:      input.TeamOneName,
		TeamTwoName:      input.TeamTwoName,
		TeamOneCaptainID: &input.CreatedBy,
		PlannedGames:     input.PlannedGames,
		DraftMode:        input.DraftMode,
		BanTimerSeconds:  input.BanTimerSeconds,
		PickTimerSeconds: input.PickTimerSeconds,
		TeamOneSide:      &blue,
		TeamTwoSide:      &red,
		Status:           domain.SeriesStatusLobby,
		CreatedAt:        time.Now(),
	}

	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}

	game := &domain.Game{
		ID:           uuid.New(),
		SeriesID:     series.ID,
		GameNumber:   1,
		Status:       domain.GameStatusPending,
		CurrentStep:  -1,
		BlueSideTeam: domain.TeamOne,
		BlueBans:     emptySlotJSON(domain.BansPerSide),
		RedBans:      emptySlotJSON(domain.BansPerSide),
		BluePicks:    emptySlotJSON(domain.PicksPerSide),
		RedPicks:     emptySlotJSON(domain.PicksPerSide),
		CreatedAt:    time.Now(),
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	return series, nil
}

// GetSeries resolves a series by UUID or short code.
func (s *SeriesService) GetSeries(ctx context.Context, idOrCode string) (*domain.Series, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		return s.seriesRepo.GetByID(ctx, id)
	}
	return s.seriesRepo.GetByShortCode(ctx, strings.ToUpper(idOrCode))
}

// JoinSeries claims a captain seat. Rejoining a seat the user already holds
// is allowed; a seat held by someone else is not.
func (s *SeriesService) JoinSeries(ctx context.Context, seriesID uuid.UUID, userID uuid.UUID, slot domain.TeamSlot) (*domain.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, domain.ErrSeriesNotFound
	}

	switch slot {
	case domain.TeamOne:
		if series.TeamOneCaptainID != nil && *series.TeamOneCaptainID != userID {
			return nil, domain.ErrTeamSlotTaken
		}
		series.TeamOneCaptainID = &userID
	case domain.TeamTwo:
		if series.TeamTwoCaptainID != nil && *series.TeamTwoCaptainID != userID {
			return nil, domain.ErrTeamSlotTaken
		}
		series.TeamTwoCaptainID = &userID
	}

	if err := s.seriesRepo.Update(ctx, series); err != nil {
		return nil, err
	}

	return series, nil
}

// GetGames returns the series' games ordered by game number.
func (s *SeriesService) GetGames(ctx context.Context, seriesID uuid.UUID) ([]*domain.Game, error) {
	return s.gameRepo.GetBySeriesID(ctx, seriesID)
}

// UpdateSeries persists lobby-state changes (side claims, ready flags,
// status) written by the series room.
func (s *SeriesService) UpdateSeries(ctx context.Context, series *domain.Series) error {
	return s.seriesRepo.Update(ctx, series)
}

func generateShortCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}

func emptySlotJSON(n int) []byte {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = `""`
	}
	return []byte("[" + strings.Join(parts, ",") + "]")
}
