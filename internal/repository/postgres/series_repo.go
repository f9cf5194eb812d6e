package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type seriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *seriesRepository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) Create(ctx context.Context, series *domain.Series) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *seriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Series, error) {
	var series domain.Series
	err := r.db.WithContext(ctx).First(&series, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) GetByShortCode(ctx context.Context, code string) (*domain.Series, error) {
	var series domain.Series
	err := r.db.WithContext(ctx).First(&series, "short_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) Update(ctx context.Context, series *domain.Series) error {
	return r.db.WithContext(ctx).Save(series).Error
}
