package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/middleware"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/request"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/response"
)

// DMSessionHandler handles the game-master session endpoints
type DMSessionHandler struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewDMSessionHandler creates a new DM session handler
func NewDMSessionHandler(storage storage.Storage, clock clock.Clock) *DMSessionHandler {
	return &DMSessionHandler{
		storage: storage,
		clock:   clock,
	}
}

// Mine handles GET /api/dm/sessions
func (h *DMSessionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	sessions, err := h.storage.ListSessionsByDM(r.Context(), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sessions)
}

// Create handles POST /api/dm/sessions
func (h *DMSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	req, err := h.decodeSessionRequest(r, false)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	id, err := h.storage.NextSessionID(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	now := h.clock.Now()
	sess := &model.GameSession{
		ID:          id,
		DMID:        player.ID,
		DMName:      player.Username,
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		MaxPlayers:  req.MaxPlayers,
		Status:      model.SessionScheduled,
		Signups:     []model.Signup{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, sess)
}

// Update handles PUT /api/dm/sessions/{id}
func (h *DMSessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	req, err := h.decodeSessionRequest(r, true)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sess, err := h.ownedSession(r, id, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if sess.Status != model.SessionScheduled {
		apierr.WriteError(w, model.ErrSessionNotOpen)
		return
	}

	sess.Title = req.Title
	sess.Description = req.Description
	sess.ScheduledAt = req.ScheduledAt
	sess.MaxPlayers = req.MaxPlayers
	sess.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

// Start handles POST /api/dm/sessions/{id}/start
func (h *DMSessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, []model.SessionStatus{model.SessionScheduled}, model.SessionStarted)
}

// Cancel handles POST /api/dm/sessions/{id}/cancel
func (h *DMSessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, []model.SessionStatus{model.SessionScheduled, model.SessionStarted}, model.SessionCancelled)
}

// Complete handles POST /api/dm/sessions/{id}/complete. Every signed-up
// character receives the session's rewards.
func (h *DMSessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GoldReward < 0 || req.ExperienceReward < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("rewards must be 0 or greater"))
		return
	}

	sess, err := h.ownedSession(r, id, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if sess.Status != model.SessionScheduled && sess.Status != model.SessionStarted {
		apierr.WriteError(w, model.ErrSessionNotOpen)
		return
	}

	now := h.clock.Now()
	for _, su := range sess.Signups {
		ch, err := h.storage.GetCharacter(r.Context(), su.CharacterID)
		if err != nil {
			// A deleted character forfeits its reward
			continue
		}
		ch.Gold += req.GoldReward
		ch.Experience += req.ExperienceReward
		ch.UpdatedAt = now
		if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	sess.Status = model.SessionCompleted
	sess.GoldReward = req.GoldReward
	sess.ExperienceReward = req.ExperienceReward
	sess.UpdatedAt = now

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

func (h *DMSessionHandler) transition(w http.ResponseWriter, r *http.Request, from []model.SessionStatus, to model.SessionStatus) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sess, err := h.ownedSession(r, id, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	allowed := false
	for _, status := range from {
		if sess.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		apierr.WriteError(w, model.ErrSessionNotOpen)
		return
	}

	sess.Status = to
	sess.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

// ownedSession loads a session and checks the caller runs it. Admins
// may manage any session.
func (h *DMSessionHandler) ownedSession(r *http.Request, id model.SessionID, dmID model.PlayerID) (*model.GameSession, error) {
	sess, err := h.storage.GetSession(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.DMID != dmID && !middleware.MustGetPlayer(r.Context()).HasRole(model.RoleAdmin) {
		return nil, model.ErrNotSessionDM
	}
	return sess, nil
}

// decodeSessionRequest validates the shared create/update body. Edits
// may keep a scheduled time that has since passed.
func (h *DMSessionHandler) decodeSessionRequest(r *http.Request, editing bool) (*request.SessionRequest, error) {
	var req request.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apierr.NewInvalidRequestError("invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, apierr.NewInvalidRequestError("title is required")
	}
	if req.ScheduledAt.IsZero() {
		return nil, apierr.NewInvalidRequestError("scheduledAt is required")
	}
	if !editing && !req.ScheduledAt.After(h.clock.Now()) {
		return nil, model.ErrScheduledInPast
	}
	if req.MaxPlayers < 0 || req.MaxPlayers > model.MaxPartySize {
		return nil, apierr.NewInvalidRequestError("maxPlayers must be between 0 and 10")
	}

	return &req, nil
}
