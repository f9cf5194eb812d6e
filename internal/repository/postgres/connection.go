package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Series{},
		&domain.Game{},
		&domain.DraftAction{},
		&domain.UnavailableChampion{},
		&domain.Champion{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Series:      NewSeriesRepository(db),
		Game:        NewGameRepository(db),
		DraftAction: NewDraftActionRepository(db),
		Unavailable: NewUnavailableChampionRepository(db),
		Champion:    NewChampionRepository(db),
	}
}
