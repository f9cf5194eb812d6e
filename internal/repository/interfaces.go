package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
}

type SeriesRepository interface {
	Create(ctx context.Context, series *domain.Series) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Series, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Series, error)
	Update(ctx context.Context, series *domain.Series) error
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	GetBySeriesID(ctx context.Context, seriesID uuid.UUID) ([]*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) error
}

type DraftActionRepository interface {
	Create(ctx context.Context, action *domain.DraftAction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.DraftAction, error)
}

type UnavailableChampionRepository interface {
	CreateMany(ctx context.Context, records []*domain.UnavailableChampion) error
	GetBySeriesID(ctx context.Context, seriesID uuid.UUID) ([]*domain.UnavailableChampion, error)
}

type ChampionRepository interface {
	Upsert(ctx context.Context, champion *domain.Champion) error
	GetAll(ctx context.Context) ([]*domain.Champion, error)
	GetByID(ctx context.Context, id string) (*domain.Champion, error)
}

type Repositories struct {
	User        UserRepository
	Series      SeriesRepository
	Game        GameRepository
	DraftAction DraftActionRepository
	Unavailable UnavailableChampionRepository
	Champion    ChampionRepository
}
