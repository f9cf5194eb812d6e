package service

import (
	"errors"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/config"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository"
)

// ErrNoPersistence is returned by operations that need a database when the
// caller was wired without one.
var ErrNoPersistence = errors.New("no persistence configured")

type Services struct {
	Auth     *AuthService
	Series   *SeriesService
	Draft    *DraftService
	Champion *ChampionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		Series:   NewSeriesService(repos.Series, repos.Game),
		Draft:    NewDraftService(repos.Game, repos.DraftAction, repos.Unavailable),
		Champion: NewChampionService(repos.Champion, cfg),
	}
}
