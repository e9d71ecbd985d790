package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/interfaces/http/response"
	"transfer-flow.backend/internal/usecases"
)

const sessionHeader = "X-Session-ID"

// SessionHandler handles session lifecycle and transfer submission
// endpoints. Each session wraps one orchestrator instance.
type SessionHandler struct {
	sessions *usecases.SessionManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *usecases.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) orchestrator(c *gin.Context) (*usecases.TransactionOrchestrator, string, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		response.Error(c, domainerrors.BadRequest("missing "+sessionHeader+" header"))
		return nil, "", false
	}

	orchestrator, ok := h.sessions.Get(id)
	if !ok {
		response.Error(c, domainerrors.NotFound("session not found"))
		return nil, "", false
	}
	return orchestrator, id, true
}

// CreateSession starts a new session
// POST /api/v1/session
func (h *SessionHandler) CreateSession(c *gin.Context) {
	id, orchestrator := h.sessions.Create(c.Request.Context())

	response.Success(c, http.StatusCreated, gin.H{
		"sessionId": id,
		"session":   orchestrator.Snapshot(),
	})
}

// GetSession returns the current session snapshot
// GET /api/v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	orchestrator, _, ok := h.orchestrator(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": orchestrator.Snapshot()})
}

// DeleteSession ends a session
// DELETE /api/v1/session
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	_, id, ok := h.orchestrator(c)
	if !ok {
		return
	}

	h.sessions.Delete(id)
	response.Success(c, http.StatusOK, gin.H{"message": "session ended"})
}

// Connect acquires a wallet connection interactively
// POST /api/v1/session/connect
func (h *SessionHandler) Connect(c *gin.Context) {
	orchestrator, _, ok := h.orchestrator(c)
	if !ok {
		return
	}

	account, err := orchestrator.Connect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	// A declined prompt is not an error; the snapshot simply stays
	// Disconnected.
	response.Success(c, http.StatusOK, gin.H{
		"account": account,
		"session": orchestrator.Snapshot(),
	})
}

// UpdateForm applies a single form field edit
// PATCH /api/v1/session/form
func (h *SessionHandler) UpdateForm(c *gin.Context) {
	orchestrator, _, ok := h.orchestrator(c)
	if !ok {
		return
	}

	var input entities.UpdateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := orchestrator.UpdateForm(input.Field, input.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"form": orchestrator.FormData()})
}

// SubmitTransaction runs the full submission sequence
// POST /api/v1/session/transactions
func (h *SessionHandler) SubmitTransaction(c *gin.Context) {
	orchestrator, _, ok := h.orchestrator(c)
	if !ok {
		return
	}

	record, err := orchestrator.Submit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if record == nil {
		// Submission while disconnected is ignored rather than failed.
		response.Success(c, http.StatusOK, gin.H{
			"message": "no wallet connected",
			"session": orchestrator.Snapshot(),
		})
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"transaction": record,
		"session":     orchestrator.Snapshot(),
	})
}
