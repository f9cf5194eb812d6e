package websocket

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/draft"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
)

// Hub tracks connected clients and the live series rooms, opening rooms on
// demand from persisted series state.
type Hub struct {
	rooms      map[string]*SeriesRoom // keyed by both UUID string and short code
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	joinSeries chan *JoinSeriesRequest
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool

	seriesSvc *service.SeriesService
	draftSvc  *service.DraftService
	logger    *zap.Logger

	mu sync.RWMutex
}

type JoinSeriesRequest struct {
	Client   *Client
	SeriesID string // UUID or short code
}

func NewHub(seriesSvc *service.SeriesService, draftSvc *service.DraftService, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]*SeriesRoom),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joinSeries: make(chan *JoinSeriesRequest),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		seriesSvc:  seriesSvc,
		draftSvc:   draftSvc,
		logger:     logger,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true

			uniqueRooms := make(map[*SeriesRoom]bool)
			for _, room := range h.rooms {
				uniqueRooms[room] = true
			}
			for room := range uniqueRooms {
				room.Stop()
			}
			h.mu.Unlock()

			// Wait for all rooms to exit before closing client channels.
			for room := range uniqueRooms {
				room.Wait()
			}

			h.mu.Lock()
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[string]*SeriesRoom)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()

					if client.room != nil {
						client.room.leave <- client
					}
				}
			}
			h.mu.Unlock()

		case req := <-h.joinSeries:
			h.mu.Lock()
			stopped := h.stopped
			h.mu.Unlock()
			if !stopped {
				h.handleJoinSeries(req)
			}
		}
	}
}

// Stop gracefully shuts down the hub and all its rooms. It blocks until the
// hub has fully shut down.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) handleJoinSeries(req *JoinSeriesRequest) {
	room := h.GetRoom(req.SeriesID)
	if room == nil {
		var err error
		room, err = h.openRoom(req.SeriesID)
		if err != nil {
			h.logger.Warn("open series room",
				zap.String("series", req.SeriesID),
				zap.Error(err))
			req.Client.sendError("SERIES_NOT_FOUND", "Series does not exist")
			return
		}
	}

	// Leave current room if in one
	if req.Client.room != nil && req.Client.room != room {
		req.Client.room.leave <- req.Client
	}

	req.Client.room = room
	room.join <- req.Client
}

// openRoom rebuilds a live room from persisted series state: the series row,
// its latest game, and the accumulated fearless set.
func (h *Hub) openRoom(idOrCode string) (*SeriesRoom, error) {
	if h.seriesSvc == nil {
		return nil, service.ErrNoPersistence
	}
	ctx := context.Background()

	series, err := h.seriesSvc.GetSeries(ctx, idOrCode)
	if err != nil {
		return nil, err
	}

	// Another join may have raced us here.
	if room := h.GetRoom(series.ID.String()); room != nil {
		return room, nil
	}

	games, err := h.seriesSvc.GetGames(ctx, series.ID)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, domain.ErrSeriesNotFound
	}
	current := games[len(games)-1]

	restricted, err := h.draftSvc.RestrictedFor(ctx, series.ID, series.DraftMode, current.GameNumber)
	if err != nil {
		return nil, err
	}
	live, err := service.LiveGame(current, restricted)
	if err != nil {
		return nil, err
	}

	session := &draft.Session{
		ID:           series.ID,
		PlannedGames: series.PlannedGames,
		DraftMode:    series.DraftMode,
		Status:       series.Status,
		TeamOneSide:  series.TeamOneSide,
		TeamTwoSide:  series.TeamTwoSide,
		TeamOneReady: series.TeamOneReady,
		TeamTwoReady: series.TeamTwoReady,
	}

	room := NewSeriesRoom(series, session, live, h.seriesSvc, h.draftSvc, h.logger)

	// A pending game past game 1 means the previous game may still take
	// fills; rebuild it so those land somewhere. It gets back the fearless
	// set it was drafted under, so fills stay subject to the same rules.
	if current.Status == domain.GameStatusPending && len(games) > 1 {
		prev := games[len(games)-2]
		prevRestricted, err := h.draftSvc.RestrictedFor(ctx, series.ID, series.DraftMode, prev.GameNumber)
		if err != nil {
			return nil, err
		}
		if prevLive, err := service.LiveGame(prev, prevRestricted); err == nil {
			room.lastGame = prevLive
		}
	}

	h.mu.Lock()
	h.rooms[series.ID.String()] = room
	h.rooms[series.ShortCode] = room
	h.mu.Unlock()

	go room.Run()

	h.logger.Info("opened series room",
		zap.String("series", series.ID.String()),
		zap.String("code", series.ShortCode))
	return room, nil
}

func (h *Hub) GetRoom(idOrCode string) *SeriesRoom {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[idOrCode]; ok {
		return room
	}
	return h.rooms[strings.ToUpper(idOrCode)]
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, tolerating a hub that is stopping.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()

	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
	}
}
