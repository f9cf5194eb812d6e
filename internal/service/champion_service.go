package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/config"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository"
)

const dataDragonBaseURL = "https://ddragon.leagueoflegends.com"

// ChampionService keeps the champion catalog in sync with Data Dragon and
// serves it to the API.
type ChampionService struct {
	championRepo repository.ChampionRepository
	cfg          *config.Config
	httpClient   *http.Client
}

func NewChampionService(championRepo repository.ChampionRepository, cfg *config.Config) *ChampionService {
	return &ChampionService{
		championRepo: championRepo,
		cfg:          cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *ChampionService) GetAllChampions(ctx context.Context) ([]*domain.Champion, error) {
	return s.championRepo.GetAll(ctx)
}

func (s *ChampionService) GetChampion(ctx context.Context, id string) (*domain.Champion, error) {
	return s.championRepo.GetByID(ctx, id)
}

type dataDragonChampionsResponse struct {
	Version string                        `json:"version"`
	Data    map[string]dataDragonChampion `json:"data"`
}

type dataDragonChampion struct {
	ID    string   `json:"id"`
	Key   string   `json:"key"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// SyncFromDataDragon refreshes the catalog and returns how many champions
// were written and the version they came from.
func (s *ChampionService) SyncFromDataDragon(ctx context.Context) (int, string, error) {
	version, err := s.LatestVersion()
	if err != nil {
		return 0, "", fmt.Errorf("get latest version: %w", err)
	}

	championsURL := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", dataDragonBaseURL, version)
	resp, err := s.httpClient.Get(championsURL)
	if err != nil {
		return 0, "", fmt.Errorf("fetch champions: %w", err)
	}
	defer resp.Body.Close()

	var championsResp dataDragonChampionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&championsResp); err != nil {
		return 0, "", fmt.Errorf("decode champions: %w", err)
	}

	count := 0
	for _, c := range championsResp.Data {
		tagsJSON, _ := json.Marshal(c.Tags)
		champion := &domain.Champion{
			ID:           c.ID,
			Key:          c.Key,
			Name:         c.Name,
			Title:        c.Title,
			ImageURL:     fmt.Sprintf("%s/cdn/%s/img/champion/%s", dataDragonBaseURL, version, c.Image.Full),
			Tags:         tagsJSON,
			LastSyncedAt: time.Now(),
		}
		if err := s.championRepo.Upsert(ctx, champion); err != nil {
			return count, version, fmt.Errorf("upsert champion %s: %w", c.ID, err)
		}
		count++
	}

	return count, version, nil
}

// LatestVersion returns the pinned version when configured, otherwise the
// newest published one.
func (s *ChampionService) LatestVersion() (string, error) {
	if s.cfg.DataDragonVersion != "" {
		return s.cfg.DataDragonVersion, nil
	}

	resp, err := s.httpClient.Get(dataDragonBaseURL + "/api/versions.json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}
	return versions[0], nil
}
