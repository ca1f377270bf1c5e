package handler

import (
	"encoding/json"
	"net/http"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/middleware"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/request"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/response"
)

// SessionHandler handles the player-facing session endpoints
type SessionHandler struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(storage storage.Storage, clock clock.Clock) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		clock:   clock,
	}
}

// List handles GET /api/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.storage.ListSessions(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sessions)
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sess, err := h.storage.GetSession(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

// Mine handles GET /api/sessions/my
func (h *SessionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	sessions, err := h.storage.ListSessions(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	mine := make([]*model.GameSession, 0)
	for _, sess := range sessions {
		for _, su := range sess.Signups {
			if su.PlayerID == player.ID {
				mine = append(mine, sess)
				break
			}
		}
	}

	response.JSON(w, http.StatusOK, mine)
}

// SignUp handles POST /api/sessions/{id}/signup
func (h *SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.storage.GetSession(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if sess.Status != model.SessionScheduled {
		apierr.WriteError(w, model.ErrSessionNotOpen)
		return
	}
	if sess.Full() {
		apierr.WriteError(w, model.ErrSessionFull)
		return
	}

	ch, err := h.storage.GetCharacter(r.Context(), model.CharacterID(req.CharacterID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if ch.PlayerID != player.ID {
		apierr.WriteError(w, model.ErrNotCharacterOwner)
		return
	}
	if ch.Status != model.CharacterApproved {
		apierr.WriteError(w, model.ErrCharacterNotApproved)
		return
	}
	if sess.SignupFor(ch.ID) != nil {
		apierr.WriteError(w, model.ErrAlreadySignedUp)
		return
	}

	sess.Signups = append(sess.Signups, model.Signup{
		CharacterID:   ch.ID,
		CharacterName: ch.Name,
		PlayerID:      player.ID,
		PlayerName:    player.Username,
		SignedUpAt:    h.clock.Now(),
	})
	sess.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

// Withdraw handles DELETE /api/sessions/{id}/signup/{characterId}
func (h *SessionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	charID, err := characterIDVar(r, "characterId")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sess, err := h.storage.GetSession(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if sess.Status != model.SessionScheduled {
		apierr.WriteError(w, model.ErrSessionNotOpen)
		return
	}

	signup := sess.SignupFor(charID)
	if signup == nil {
		apierr.WriteError(w, model.ErrNotSignedUp)
		return
	}
	if signup.PlayerID != player.ID {
		apierr.WriteError(w, model.ErrNotCharacterOwner)
		return
	}

	kept := sess.Signups[:0]
	for _, su := range sess.Signups {
		if su.CharacterID != charID {
			kept = append(kept, su)
		}
	}
	sess.Signups = kept
	sess.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
