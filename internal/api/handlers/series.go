package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/api/middleware"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
)

type SeriesHandler struct {
	seriesService *service.SeriesService
}

func NewSeriesHandler(seriesService *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService}
}

type CreateSeriesRequest struct {
	TeamOneName      string `json:"teamOneName"`
	TeamTwoName      string `json:"teamTwoName"`
	PlannedGames     int    `json:"plannedGames"`
	DraftMode        string `json:"draftMode"`
	BanTimerSeconds  int    `json:"banTimerSeconds"`
	PickTimerSeconds int    `json:"pickTimerSeconds"`
}

type SeriesResponse struct {
	ID               string  `json:"id"`
	ShortCode        string  `json:"shortCode"`
	TeamOneName      string  `json:"teamOneName"`
	TeamTwoName      string  `json:"teamTwoName"`
	TeamOneCaptainID *string `json:"teamOneCaptainId"`
	TeamTwoCaptainID *string `json:"teamTwoCaptainId"`
	PlannedGames     int     `json:"plannedGames"`
	DraftMode        string  `json:"draftMode"`
	BanTimerSeconds  int     `json:"banTimerSeconds"`
	PickTimerSeconds int     `json:"pickTimerSeconds"`
	Status           string  `json:"status"`
}

type JoinSeriesRequest struct {
	Team string `json:"team"` // "team1" or "team2"
}

type GameResponse struct {
	ID           string   `json:"id"`
	GameNumber   int      `json:"gameNumber"`
	Status       string   `json:"status"`
	CurrentStep  int      `json:"currentStep"`
	BlueSideTeam string   `json:"blueSideTeam"`
	BlueBans     []string `json:"blueBans"`
	RedBans      []string `json:"redBans"`
	BluePicks    []string `json:"bluePicks"`
	RedPicks     []string `json:"redPicks"`
}

func (h *SeriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TeamOneName == "" || req.TeamTwoName == "" {
		http.Error(w, "Both team names are required", http.StatusBadRequest)
		return
	}

	mode := domain.DraftModeNormal
	switch req.DraftMode {
	case string(domain.DraftModeFearless):
		mode = domain.DraftModeFearless
	case string(domain.DraftModeFullFearless):
		mode = domain.DraftModeFullFearless
	}

	banTimer := 30
	if req.BanTimerSeconds > 0 {
		banTimer = req.BanTimerSeconds
	}
	pickTimer := 30
	if req.PickTimerSeconds > 0 {
		pickTimer = req.PickTimerSeconds
	}
	plannedGames := req.PlannedGames
	if plannedGames == 0 {
		plannedGames = 1
	}

	series, err := h.seriesService.CreateSeries(r.Context(), service.CreateSeriesInput{
		CreatedBy:        userID,
		TeamOneName:      req.TeamOneName,
		TeamTwoName:      req.TeamTwoName,
		PlannedGames:     plannedGames,
		DraftMode:        mode,
		BanTimerSeconds:  banTimer,
		PickTimerSeconds: pickTimer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEvenSeriesLength) {
			http.Error(w, "Planned games must be a positive odd number", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create series", http.StatusInternalServerError)
		return
	}

	writeJSON(w, seriesResponse(series))
}

func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "idOrCode")

	series, err := h.seriesService.GetSeries(r.Context(), idOrCode)
	if err != nil {
		http.Error(w, "Series not found", http.StatusNotFound)
		return
	}

	writeJSON(w, seriesResponse(series))
}

func (h *SeriesHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idOrCode := chi.URLParam(r, "idOrCode")
	series, err := h.seriesService.GetSeries(r.Context(), idOrCode)
	if err != nil {
		http.Error(w, "Series not found", http.StatusNotFound)
		return
	}

	var req JoinSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team := domain.TeamSlot(req.Team)
	if team != domain.TeamOne && team != domain.TeamTwo {
		http.Error(w, "Team must be team1 or team2", http.StatusBadRequest)
		return
	}

	series, err = h.seriesService.JoinSeries(r.Context(), series.ID, userID, team)
	if err != nil {
		if errors.Is(err, domain.ErrTeamSlotTaken) {
			http.Error(w, "That captain seat is taken", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to join series", http.StatusInternalServerError)
		return
	}

	writeJSON(w, seriesResponse(series))
}

func (h *SeriesHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "idOrCode")

	series, err := h.seriesService.GetSeries(r.Context(), idOrCode)
	if err != nil {
		http.Error(w, "Series not found", http.StatusNotFound)
		return
	}

	games, err := h.seriesService.GetGames(r.Context(), series.ID)
	if err != nil {
		http.Error(w, "Failed to get games", http.StatusInternalServerError)
		return
	}

	resp := make([]GameResponse, len(games))
	for i, g := range games {
		resp[i] = GameResponse{
			ID:           g.ID.String(),
			GameNumber:   g.GameNumber,
			Status:       string(g.Status),
			CurrentStep:  g.CurrentStep,
			BlueSideTeam: string(g.BlueSideTeam),
			BlueBans:     slotArray(g.BlueBans),
			RedBans:      slotArray(g.RedBans),
			BluePicks:    slotArray(g.BluePicks),
			RedPicks:     slotArray(g.RedPicks),
		}
	}

	writeJSON(w, resp)
}

func seriesResponse(series *domain.Series) SeriesResponse {
	var teamOneCaptain, teamTwoCaptain *string
	if series.TeamOneCaptainID != nil {
		id := series.TeamOneCaptainID.String()
		teamOneCaptain = &id
	}
	if series.TeamTwoCaptainID != nil {
		id := series.TeamTwoCaptainID.String()
		teamTwoCaptain = &id
	}

	return SeriesResponse{
		ID:               series.ID.String(),
		ShortCode:        series.ShortCode,
		TeamOneName:      series.TeamOneName,
		TeamTwoName:      series.TeamTwoName,
		TeamOneCaptainID: teamOneCaptain,
		TeamTwoCaptainID: teamTwoCaptain,
		PlannedGames:     series.PlannedGames,
		DraftMode:        string(series.DraftMode),
		BanTimerSeconds:  series.BanTimerSeconds,
		PickTimerSeconds: series.PickTimerSeconds,
		Status:           string(series.Status),
	}
}

func slotArray(data []byte) []string {
	var slots []string
	if err := json.Unmarshal(data, &slots); err != nil {
		return []string{}
	}
	return slots
}
