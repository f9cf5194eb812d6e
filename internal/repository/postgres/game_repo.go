package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetBySeriesID(ctx context.Context, seriesID uuid.UUID) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("game_number ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Update(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

type draftActionRepository struct {
	db *gorm.DB
}

func NewDraftActionRepository(db *gorm.DB) *draftActionRepository {
	return &draftActionRepository{db: db}
}

func (r *draftActionRepository) Create(ctx context.Context, action *domain.DraftAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *draftActionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.DraftAction, error) {
	var actions []*domain.DraftAction
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("step_index ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
