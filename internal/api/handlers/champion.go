package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
)

type ChampionHandler struct {
	championService *service.ChampionService
	logger          *zap.Logger
}

func NewChampionHandler(championService *service.ChampionService, logger *zap.Logger) *ChampionHandler {
	return &ChampionHandler{championService: championService, logger: logger}
}

type ChampionResponse struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	ImageURL string   `json:"imageUrl"`
	Tags     []string `json:"tags"`
}

type ChampionsResponse struct {
	Champions []ChampionResponse `json:"champions"`
}

type SyncResponse struct {
	Synced  int    `json:"synced"`
	Version string `json:"version"`
}

func (h *ChampionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	champions, err := h.championService.GetAllChampions(r.Context())
	if err != nil {
		h.logger.Error("list champions", zap.Error(err))
		http.Error(w, "Failed to get champions", http.StatusInternalServerError)
		return
	}

	resp := ChampionsResponse{
		Champions: make([]ChampionResponse, len(champions)),
	}
	for i, c := range champions {
		var tags []string
		json.Unmarshal(c.Tags, &tags)

		resp.Champions[i] = ChampionResponse{
			ID:       c.ID,
			Key:      c.Key,
			Name:     c.Name,
			Title:    c.Title,
			ImageURL: c.ImageURL,
			Tags:     tags,
		}
	}

	writeJSON(w, resp)
}

func (h *ChampionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	champion, err := h.championService.GetChampion(r.Context(), id)
	if err != nil {
		http.Error(w, "Champion not found", http.StatusNotFound)
		return
	}

	var tags []string
	json.Unmarshal(champion.Tags, &tags)

	writeJSON(w, ChampionResponse{
		ID:       champion.ID,
		Key:      champion.Key,
		Name:     champion.Name,
		Title:    champion.Title,
		ImageURL: champion.ImageURL,
		Tags:     tags,
	})
}

func (h *ChampionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count, version, err := h.championService.SyncFromDataDragon(r.Context())
	if err != nil {
		h.logger.Error("sync champions", zap.Error(err))
		http.Error(w, "Failed to sync champions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SyncResponse{Synced: count, Version: version})
}
