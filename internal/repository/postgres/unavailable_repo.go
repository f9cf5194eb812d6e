package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type unavailableChampionRepository struct {
	db *gorm.DB
}

func NewUnavailableChampionRepository(db *gorm.DB) *unavailableChampionRepository {
	return &unavailableChampionRepository{db: db}
}

func (r *unavailableChampionRepository) CreateMany(ctx context.Context, records []*domain.UnavailableChampion) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(records).Error
}

func (r *unavailableChampionRepository) GetBySeriesID(ctx context.Context, seriesID uuid.UUID) ([]*domain.UnavailableChampion, error) {
	var records []*domain.UnavailableChampion
	err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("from_game ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
