package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/draft"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
)

// SeriesRoom owns the live state of one series: the session (side claims,
// ready flags) and the current game. All mutation happens on the room
// goroutine; clients talk to it through channels and get broadcasts back.
// The services may be nil, in which case the room runs without persistence.
type SeriesRoom struct {
	id        uuid.UUID
	shortCode string
	series    *domain.Series
	session   *draft.Session
	game      *draft.Game
	lastGame  *draft.Game // most recently completed game, fill target while the next one is pending

	clients      map[*Client]bool
	captains     map[domain.TeamSlot]*Client
	currentHover map[domain.Side]*string

	timers  *TimerManager
	emitter *EventEmitter

	seriesSvc *service.SeriesService
	draftSvc  *service.DraftService
	logger    *zap.Logger

	// Channels
	join          chan *Client
	leave         chan *Client
	broadcast     chan *Message
	ready         chan *ReadyRequest
	selectSide    chan *SelectSideRequest
	clearSide     chan *Client
	hoverChampion chan *HoverChampionRequest
	lockIn        chan *LockInRequest
	beginFill     chan *BeginFillRequest
	confirmFill   chan *ConfirmFillRequest
	cancelFill    chan *Client
	syncState     chan *Client
	timerExpired  chan int
	stop          chan struct{}
	done          chan struct{}
	stopped       bool

	mu sync.Mutex // guards stopped
}

type ReadyRequest struct {
	Client *Client
	Ready  bool
}

type SelectSideRequest struct {
	Client *Client
	Side   domain.Side
}

type HoverChampionRequest struct {
	Client     *Client
	ChampionID *string
}

type LockInRequest struct {
	Client     *Client
	ChampionID string
}

type BeginFillRequest struct {
	Client    *Client
	Kind      domain.ActionKind
	SlotIndex int
}

type ConfirmFillRequest struct {
	Client     *Client
	ChampionID string
}

func NewSeriesRoom(
	series *domain.Series,
	session *draft.Session,
	game *draft.Game,
	seriesSvc *service.SeriesService,
	draftSvc *service.DraftService,
	logger *zap.Logger,
) *SeriesRoom {
	r := &SeriesRoom{
		id:            series.ID,
		shortCode:     series.ShortCode,
		series:        series,
		session:       session,
		game:          game,
		clients:       make(map[*Client]bool),
		captains:      make(map[domain.TeamSlot]*Client),
		currentHover:  make(map[domain.Side]*string),
		seriesSvc:     seriesSvc,
		draftSvc:      draftSvc,
		logger:        logger,
		join:          make(chan *Client),
		leave:         make(chan *Client),
		broadcast:     make(chan *Message),
		ready:         make(chan *ReadyRequest),
		selectSide:    make(chan *SelectSideRequest),
		clearSide:     make(chan *Client),
		hoverChampion: make(chan *HoverChampionRequest),
		lockIn:        make(chan *LockInRequest),
		beginFill:     make(chan *BeginFillRequest),
		confirmFill:   make(chan *ConfirmFillRequest),
		cancelFill:    make(chan *Client),
		syncState:     make(chan *Client),
		timerExpired:  make(chan int, 4),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	r.emitter = NewEventEmitter(r)
	r.timers = NewTimerManager(series.BanTimerSeconds, series.PickTimerSeconds, r.emitter, func(stepIndex int) {
		select {
		case r.timerExpired <- stepIndex:
		case <-r.done:
		}
	})
	return r
}

func (r *SeriesRoom) Run() {
	defer close(r.done)

	r.resumeTimer()

	for {
		select {
		case <-r.stop:
			r.timers.Stop()
			return

		case client := <-r.join:
			r.handleJoin(client)

		case client := <-r.leave:
			r.handleLeave(client)

		case msg := <-r.broadcast:
			r.emitter.Broadcast(msg)

		case req := <-r.ready:
			r.handleReady(req)

		case req := <-r.selectSide:
			r.handleSelectSide(req)

		case client := <-r.clearSide:
			r.handleClearSide(client)

		case req := <-r.hoverChampion:
			r.handleHover(req)

		case req := <-r.lockIn:
			r.handleLockIn(req)

		case req := <-r.beginFill:
			r.handleBeginFill(req)

		case req := <-r.confirmFill:
			r.handleConfirmFill(req)

		case client := <-r.cancelFill:
			r.handleCancelFill(client)

		case client := <-r.syncState:
			r.sendStateSync(client)

		case stepIndex := <-r.timerExpired:
			r.handleTimerExpired(stepIndex)
		}
	}
}

// resumeTimer re-arms the active step's deadline when the room was rebuilt
// around a draft already in progress. Runs on the room goroutine before the
// loop picks up, so the single-writer discipline holds.
func (r *SeriesRoom) resumeTimer() {
	if r.game.Status != domain.GameStatusDrafting {
		return
	}
	step := r.game.ActiveStep()
	if step == nil {
		return
	}
	r.timers.Start(r.game.CurrentStep, step.Kind)
}

// Stop shuts the room loop down. Idempotent.
func (r *SeriesRoom) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stopped {
		r.stopped = true
		close(r.stop)
	}
}

// Wait blocks until the room loop has exited.
func (r *SeriesRoom) Wait() {
	<-r.done
}

// --- Membership ---

func (r *SeriesRoom) handleJoin(client *Client) {
	r.refreshCaptains()

	client.team = r.teamOf(client.userID)
	r.clients[client] = true
	if client.team == domain.TeamOne || client.team == domain.TeamTwo {
		r.captains[client.team] = client
	}

	r.logger.Info("client joined series room",
		zap.String("series", r.id.String()),
		zap.String("user", client.userID.String()),
		zap.String("team", string(client.team)))

	r.sendStateSync(client)
	r.emitter.PlayerUpdate(client.team, client.displayName, "connected")
}

func (r *SeriesRoom) handleLeave(client *Client) {
	if _, ok := r.clients[client]; !ok {
		return
	}
	delete(r.clients, client)
	if r.captains[client.team] == client {
		delete(r.captains, client.team)
	}
	client.room = nil

	r.emitter.PlayerUpdate(client.team, client.displayName, "disconnected")
}

// refreshCaptains re-reads captain seats, which may have been claimed over
// HTTP since the room opened.
func (r *SeriesRoom) refreshCaptains() {
	if r.seriesSvc == nil {
		return
	}
	series, err := r.seriesSvc.GetSeries(context.Background(), r.id.String())
	if err != nil {
		r.logger.Warn("refresh series captains", zap.Error(err))
		return
	}
	r.series.TeamOneCaptainID = series.TeamOneCaptainID
	r.series.TeamTwoCaptainID = series.TeamTwoCaptainID
}

func (r *SeriesRoom) teamOf(userID uuid.UUID) domain.TeamSlot {
	if r.series.TeamOneCaptainID != nil && *r.series.TeamOneCaptainID == userID {
		return domain.TeamOne
	}
	if r.series.TeamTwoCaptainID != nil && *r.series.TeamTwoCaptainID == userID {
		return domain.TeamTwo
	}
	return ""
}

// actingSide resolves which physical side the client's team controls right
// now. Before the game starts it comes from the session's side claims; once
// drafting it is fixed by the game's side assignment.
func (r *SeriesRoom) actingSide(client *Client) (domain.Side, bool) {
	if client.team != domain.TeamOne && client.team != domain.TeamTwo {
		return "", false
	}
	if r.game.Status == domain.GameStatusPending {
		side := r.session.SideOf(client.team)
		if side == nil {
			return "", false
		}
		return *side, true
	}
	if client.team == r.game.BlueSideTeam {
		return domain.SideBlue, true
	}
	return domain.SideRed, true
}

// --- Lobby: sides and ready flags ---

func (r *SeriesRoom) handleSelectSide(req *SelectSideRequest) {
	if req.Client.team != domain.TeamOne && req.Client.team != domain.TeamTwo {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can select sides")
		return
	}
	if r.game.Status != domain.GameStatusPending {
		req.Client.sendError("INVALID_STATE", "Sides can only change before the draft starts")
		return
	}
	if r.game.GameNumber == 1 {
		req.Client.sendError("SIDE_FIXED", "Game 1 sides are fixed")
		return
	}

	if err := r.session.SelectSide(req.Client.team, req.Side); err != nil {
		if err == domain.ErrInvalidSide {
			req.Client.sendError("INVALID_PAYLOAD", "Side must be blue or red")
			return
		}
		req.Client.sendError("SIDE_TAKEN", "That side is already claimed")
		return
	}

	r.persistSeries()
	r.broadcastSideUpdate()
}

func (r *SeriesRoom) handleClearSide(client *Client) {
	if client.team != domain.TeamOne && client.team != domain.TeamTwo {
		client.sendError("NOT_A_CAPTAIN", "Only captains can clear sides")
		return
	}
	if r.game.Status != domain.GameStatusPending || r.game.GameNumber == 1 {
		client.sendError("INVALID_STATE", "Sides can only change before the draft starts")
		return
	}

	r.session.ClearSide(client.team)
	r.persistSeries()
	r.broadcastSideUpdate()
}

func (r *SeriesRoom) handleReady(req *ReadyRequest) {
	if req.Client.team != domain.TeamOne && req.Client.team != domain.TeamTwo {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can ready up")
		return
	}
	if r.game.Status != domain.GameStatusPending {
		req.Client.sendError("INVALID_STATE", "The draft has already started")
		return
	}

	if err := r.session.SetReady(req.Client.team, req.Ready); err != nil {
		req.Client.sendError("SIDE_NOT_SELECTED", "Select a side before readying up")
		return
	}

	r.persistSeries()
	r.broadcastSideUpdate()

	if r.session.CanStartGame() {
		r.startGame()
	}
}

func (r *SeriesRoom) startGame() {
	// The fearless set is fixed at draft start, not game creation, so
	// corrections filled on earlier games are always reflected.
	if r.draftSvc != nil {
		restricted, err := r.draftSvc.RestrictedFor(context.Background(), r.id, r.session.DraftMode, r.game.GameNumber)
		if err != nil {
			r.logger.Error("load fearless set", zap.Error(err))
		} else {
			r.game.Restricted = restricted
		}
	}

	r.game.BlueSideTeam = r.session.BlueSideTeam()
	if err := r.game.Start(); err != nil {
		r.logger.Error("start game", zap.Error(err))
		return
	}
	r.session.Status = domain.SeriesStatusInProgress

	r.persistSeries()
	r.persistGame()

	step := r.game.ActiveStep()
	r.emitter.GameStarted(r.game.GameNumber, r.game.BlueSideTeam, *step, r.timers.DurationMs(step.Kind))
	r.timers.Start(r.game.CurrentStep, step.Kind)

	r.logger.Info("draft started",
		zap.String("series", r.id.String()),
		zap.Int("game", r.game.GameNumber))
}

// --- Drafting ---

func (r *SeriesRoom) handleHover(req *HoverChampionRequest) {
	side, ok := r.actingSide(req.Client)
	if !ok {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can hover champions")
		return
	}
	if r.game.Status != domain.GameStatusDrafting {
		req.Client.sendError("GAME_NOT_DRAFTING", "No draft in progress")
		return
	}
	if step := r.game.ActiveStep(); step == nil || step.Side != side {
		req.Client.sendError("NOT_YOUR_TURN", "It is not your turn")
		return
	}

	r.currentHover[side] = req.ChampionID
	r.emitter.ChampionHovered(side, req.ChampionID)
}

func (r *SeriesRoom) handleLockIn(req *LockInRequest) {
	side, ok := r.actingSide(req.Client)
	if !ok {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can lock in")
		return
	}

	step, err := r.game.LockIn(side, req.ChampionID)
	if err != nil {
		r.sendDraftError(req.Client, err)
		return
	}
	stepIndex := r.game.CurrentStep - 1

	r.timers.Stop()
	delete(r.currentHover, side)

	r.persistGame()
	r.recordAction(stepIndex, *step, req.ChampionID, false)
	r.emitter.ChampionLocked(stepIndex, *step, req.ChampionID, false)

	r.afterAdvance()
}

func (r *SeriesRoom) handleTimerExpired(stepIndex int) {
	step, advanced := r.game.ExpireStep(stepIndex)
	if !advanced {
		// Stale signal: the step was locked in (or the game ended) between
		// the deadline firing and this message draining.
		return
	}

	delete(r.currentHover, step.Side)

	r.persistGame()
	r.recordAction(stepIndex, *step, domain.SlotUnfilled, true)
	r.emitter.ChampionLocked(stepIndex, *step, domain.SlotUnfilled, true)

	r.logger.Info("step expired",
		zap.String("series", r.id.String()),
		zap.Int("step", stepIndex),
		zap.String("side", string(step.Side)))

	r.afterAdvance()
}

func (r *SeriesRoom) afterAdvance() {
	if r.game.Status == domain.GameStatusCompleted {
		r.finishGame()
		return
	}

	step := r.game.ActiveStep()
	r.emitter.StepChanged(r.game.CurrentStep, *step, r.timers.DurationMs(step.Kind))
	r.timers.Start(r.game.CurrentStep, step.Kind)
}

func (r *SeriesRoom) finishGame() {
	r.timers.Stop()

	if r.draftSvc != nil {
		if err := r.draftSvc.CompleteGame(context.Background(), r.id, r.game); err != nil {
			r.logger.Error("complete game", zap.Error(err))
		}
	}

	var nextNumber *int
	if r.game.GameNumber < r.session.PlannedGames {
		n := r.game.GameNumber + 1
		nextNumber = &n
	}

	r.emitter.GameCompleted(&GameCompletedPayload{
		GameNumber:     r.game.GameNumber,
		BlueBans:       r.game.BlueBans,
		RedBans:        r.game.RedBans,
		BluePicks:      r.game.BluePicks,
		RedPicks:       r.game.RedPicks,
		NextGameNumber: nextNumber,
	})

	if nextNumber == nil {
		r.session.Status = domain.SeriesStatusCompleted
		now := time.Now()
		r.series.CompletedAt = &now
		r.persistSeries()
		r.emitter.SeriesCompleted()
		r.logger.Info("series completed", zap.String("series", r.id.String()))
		return
	}

	// Keep the finished game reachable for late fills until the next draft
	// actually begins.
	finished := r.game

	r.session.ResetForNextGame()
	next := draft.NewGame(uuid.New(), *nextNumber, domain.TeamOne, nil)
	r.game = next
	r.lastGame = finished

	if r.draftSvc != nil {
		if err := r.draftSvc.CreateGame(context.Background(), r.id, next); err != nil {
			r.logger.Error("create next game", zap.Error(err))
		}
	}
	r.persistSeries()
	r.broadcastSideUpdate()
}

// --- Fill recovery ---

// fillGame returns the game a fill request should target: the current game
// while it still has slots, or the previous game after the series rolled
// over to a new pending draft.
func (r *SeriesRoom) fillGame() *draft.Game {
	if r.game.Status == domain.GameStatusPending && r.lastGame != nil {
		return r.lastGame
	}
	return r.game
}

func (r *SeriesRoom) fillSide(client *Client, g *draft.Game) (domain.Side, bool) {
	if client.team != domain.TeamOne && client.team != domain.TeamTwo {
		return "", false
	}
	if client.team == g.BlueSideTeam {
		return domain.SideBlue, true
	}
	return domain.SideRed, true
}

func (r *SeriesRoom) handleBeginFill(req *BeginFillRequest) {
	g := r.fillGame()
	side, ok := r.fillSide(req.Client, g)
	if !ok {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can fill slots")
		return
	}

	if err := g.BeginFill(side, req.Kind, req.SlotIndex); err != nil {
		r.sendDraftError(req.Client, err)
		return
	}
	// The fill scope is private to the captain until confirmed.
}

func (r *SeriesRoom) handleConfirmFill(req *ConfirmFillRequest) {
	g := r.fillGame()
	side, ok := r.fillSide(req.Client, g)
	if !ok {
		req.Client.sendError("NOT_A_CAPTAIN", "Only captains can fill slots")
		return
	}

	target, err := g.ConfirmFill(side, req.ChampionID)
	if err != nil {
		r.sendDraftError(req.Client, err)
		return
	}

	if r.draftSvc != nil {
		ctx := context.Background()
		if err := r.draftSvc.SaveGame(ctx, r.id, g); err != nil {
			r.logger.Error("persist filled slot", zap.Error(err))
		}
		stepIndex := stepIndexOf(target)
		if stepIndex >= 0 {
			step := domain.DraftOrder[stepIndex]
			if err := r.draftSvc.RecordAction(ctx, g.ID, stepIndex, step, req.ChampionID, false); err != nil {
				r.logger.Error("record fill action", zap.Error(err))
			}
		}
		// A completed game already wrote its fearless records; the filled
		// champion has to be appended separately.
		if g.Status == domain.GameStatusCompleted {
			if err := r.draftSvc.AddUnavailable(ctx, r.id, g.GameNumber, target.Side, target.Kind, req.ChampionID); err != nil {
				r.logger.Error("record filled champion", zap.Error(err))
			}
		}
	}

	r.emitter.SlotFilled(target.Side, target.Kind, target.SlotIndex, req.ChampionID)
}

func (r *SeriesRoom) handleCancelFill(client *Client) {
	g := r.fillGame()
	side, ok := r.fillSide(client, g)
	if !ok {
		return
	}
	g.CancelFill(side)
}

func stepIndexOf(target *draft.FillTarget) int {
	for i, step := range domain.DraftOrder {
		if step.Side == target.Side && step.Kind == target.Kind && step.SlotIndex == target.SlotIndex {
			return i
		}
	}
	return -1
}

// --- State sync ---

func (r *SeriesRoom) sendStateSync(client *Client) {
	payload := StateSyncPayload{
		Series: SeriesState{
			SeriesID:     r.id.String(),
			ShortCode:    r.shortCode,
			TeamOneName:  r.series.TeamOneName,
			TeamTwoName:  r.series.TeamTwoName,
			PlannedGames: r.session.PlannedGames,
			DraftMode:    r.session.DraftMode,
			Status:       r.session.Status,
			TeamOneSide:  r.session.TeamOneSide,
			TeamTwoSide:  r.session.TeamTwoSide,
			TeamOneReady: r.session.TeamOneReady,
			TeamTwoReady: r.session.TeamTwoReady,
		},
		Game: GameState{
			GameID:           r.game.ID.String(),
			GameNumber:       r.game.GameNumber,
			Status:           r.game.Status,
			CurrentStep:      r.game.CurrentStep,
			BlueSideTeam:     r.game.BlueSideTeam,
			BlueBans:         r.game.BlueBans,
			RedBans:          r.game.RedBans,
			BluePicks:        r.game.BluePicks,
			RedPicks:         r.game.RedPicks,
			Restricted:       restrictedList(r.game.Restricted),
			BlueHover:        r.currentHover[domain.SideBlue],
			RedHover:         r.currentHover[domain.SideRed],
			TimerRemainingMs: r.timers.Remaining(),
		},
		YourTeam: client.team,
	}

	msg, err := NewMessage(MessageTypeStateSync, payload)
	if err != nil {
		r.logger.Error("build state sync", zap.Error(err))
		return
	}
	r.emitter.SendTo(client, msg)
}

func restrictedList(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func (r *SeriesRoom) broadcastSideUpdate() {
	r.emitter.SideUpdate(&SideUpdatePayload{
		TeamOneSide:  r.session.TeamOneSide,
		TeamTwoSide:  r.session.TeamTwoSide,
		TeamOneReady: r.session.TeamOneReady,
		TeamTwoReady: r.session.TeamTwoReady,
	})
}

// --- Persistence ---

func (r *SeriesRoom) persistGame() {
	if r.draftSvc == nil {
		return
	}
	if err := r.draftSvc.SaveGame(context.Background(), r.id, r.game); err != nil {
		r.logger.Error("persist game state", zap.Error(err))
	}
}

func (r *SeriesRoom) recordAction(stepIndex int, step domain.DraftStep, championID string, byTimeout bool) {
	if r.draftSvc == nil {
		return
	}
	if err := r.draftSvc.RecordAction(context.Background(), r.game.ID, stepIndex, step, championID, byTimeout); err != nil {
		r.logger.Error("record draft action", zap.Error(err))
	}
}

func (r *SeriesRoom) persistSeries() {
	r.series.TeamOneSide = r.session.TeamOneSide
	r.series.TeamTwoSide = r.session.TeamTwoSide
	r.series.TeamOneReady = r.session.TeamOneReady
	r.series.TeamTwoReady = r.session.TeamTwoReady
	r.series.Status = r.session.Status

	if r.seriesSvc == nil {
		return
	}
	if err := r.seriesSvc.UpdateSeries(context.Background(), r.series); err != nil {
		r.logger.Error("persist series state", zap.Error(err))
	}
}

func (r *SeriesRoom) sendDraftError(client *Client, err error) {
	switch err {
	case domain.ErrNotYourTurn:
		client.sendError("NOT_YOUR_TURN", "It is not your turn")
	case domain.ErrInvalidChampion:
		client.sendError("INVALID_CHAMPION", "That champion cannot be selected")
	case domain.ErrGameNotDrafting:
		client.sendError("GAME_NOT_DRAFTING", "No draft in progress")
	case domain.ErrSlotNotFillable:
		client.sendError("SLOT_NOT_FILLABLE", "That slot cannot be filled")
	default:
		client.sendError("INTERNAL_ERROR", "Something went wrong")
	}
}
