package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type fakeSeriesRepo struct {
	byID   map[uuid.UUID]*domain.Series
	byCode map[string]*domain.Series
}

func newFakeSeriesRepo() *fakeSeriesRepo {
	return &fakeSeriesRepo{
		byID:   make(map[uuid.UUID]*domain.Series),
		byCode: make(map[string]*domain.Series),
	}
}

func (r *fakeSeriesRepo) Create(_ context.Context, s *domain.Series) error {
	r.byID[s.ID] = s
	r.byCode[s.ShortCode] = s
	return nil
}

func (r *fakeSeriesRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Series, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	return s, nil
}

func (r *fakeSeriesRepo) GetByShortCode(_ context.Context, code string) (*domain.Series, error) {
	s, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	return s, nil
}

func (r *fakeSeriesRepo) Update(_ context.Context, s *domain.Series) error {
	r.byID[s.ID] = s
	r.byCode[s.ShortCode] = s
	return nil
}

type fakeGameRepo struct {
	games map[uuid.UUID]*domain.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[uuid.UUID]*domain.Game)}
}

func (r *fakeGameRepo) Create(_ context.Context, g *domain.Game) error {
	r.games[g.ID] = g
	return nil
}

func (r *fakeGameRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	return g, nil
}

func (r *fakeGameRepo) GetBySeriesID(_ context.Context, seriesID uuid.UUID) ([]*domain.Game, error) {
	var out []*domain.Game
	for _, g := range r.games {
		if g.SeriesID == seriesID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) Update(_ context.Context, g *domain.Game) error {
	r.games[g.ID] = g
	return nil
}

func newSeriesServiceForTest() (*SeriesService, *fakeSeriesRepo, *fakeGameRepo) {
	seriesRepo := newFakeSeriesRepo()
	gameRepo := newFakeGameRepo()
	return NewSeriesService(seriesRepo, gameRepo), seriesRepo, gameRepo
}

func validInput(creator uuid.UUID) CreateSeriesInput {
	return CreateSeriesInput{
		CreatedBy:        creator,
		TeamOneName:      "Cloud Nine",
		TeamTwoName:      "Team Liquid",
		PlannedGames:     3,
		DraftMode:        domain.DraftModeFearless,
		BanTimerSeconds:  30,
		PickTimerSeconds: 45,
	}
}

func TestCreateSeries(t *testing.T) {
	svc, _, _ := newSeriesServiceForTest()
	creator := uuid.New()

	series, err := svc.CreateSeries(context.Background(), validInput(creator))
	require.NoError(t, err)

	assert.Len(t, series.ShortCode, 6)
	assert.Equal(t, domain.SeriesStatusLobby, series.Status)
	require.NotNil(t, series.TeamOneCaptainID)
	assert.Equal(t, creator, *series.TeamOneCaptainID)
	assert.Nil(t, series.TeamTwoCaptainID)
	require.NotNil(t, series.TeamOneSide)
	assert.Equal(t, domain.SideBlue, *series.TeamOneSide)

	games, err := svc.GetGames(context.Background(), series.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 1, games[0].GameNumber)
	assert.Equal(t, domain.GameStatusPending, games[0].Status)
	assert.Equal(t, -1, games[0].CurrentStep)
	assert.Equal(t, domain.TeamOne, games[0].BlueSideTeam)
}

func TestCreateSeriesRejectsEvenLength(t *testing.T) {
	svc, _, _ := newSeriesServiceForTest()

	for _, n := range []int{0, 2, 4, -1} {
		input := validInput(uuid.New())
		input.PlannedGames = n
		_, err := svc.CreateSeries(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrEvenSeriesLength, "plannedGames=%d", n)
	}
}

func TestGetSeriesByShortCode(t *testing.T) {
	svc, _, _ := newSeriesServiceForTest()

	series, err := svc.CreateSeries(context.Background(), validInput(uuid.New()))
	require.NoError(t, err)

	// Lookup is case-insensitive on the code.
	found, err := svc.GetSeries(context.Background(), series.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, series.ID, found.ID)

	found, err = svc.GetSeries(context.Background(), strings.ToLower(series.ShortCode))
	require.NoError(t, err)
	assert.Equal(t, series.ID, found.ID)

	found, err = svc.GetSeries(context.Background(), series.ID.String())
	require.NoError(t, err)
	assert.Equal(t, series.ID, found.ID)
}

func TestJoinSeries(t *testing.T) {
	svc, _, _ := newSeriesServiceForTest()
	creator := uuid.New()

	series, err := svc.CreateSeries(context.Background(), validInput(creator))
	require.NoError(t, err)

	// Second captain claims the open seat.
	other := uuid.New()
	updated, err := svc.JoinSeries(context.Background(), series.ID, other, domain.TeamTwo)
	require.NoError(t, err)
	require.NotNil(t, updated.TeamTwoCaptainID)
	assert.Equal(t, other, *updated.TeamTwoCaptainID)

	// A taken seat cannot be claimed by someone else.
	_, err = svc.JoinSeries(context.Background(), series.ID, uuid.New(), domain.TeamOne)
	assert.ErrorIs(t, err, domain.ErrTeamSlotTaken)

	// Rejoining your own seat is fine.
	_, err = svc.JoinSeries(context.Background(), series.ID, creator, domain.TeamOne)
	assert.NoError(t, err)
}
