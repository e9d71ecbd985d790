package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/interfaces/http/response"
	"transfer-flow.backend/internal/usecases"
	"transfer-flow.backend/pkg/utils"
)

type historyService interface {
	GetUser(ctx context.Context, address string) (*entities.UserRecord, error)
	GetHistory(ctx context.Context, address string) (*entities.UserHistory, error)
}

// HistoryHandler handles persisted user and transaction queries
type HistoryHandler struct {
	historyUsecase historyService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyUsecase *usecases.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{historyUsecase: historyUsecase}
}

// GetUser returns a user record by address
// GET /api/v1/users/:address
func (h *HistoryHandler) GetUser(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		response.Error(c, domainerrors.BadRequest("address is required"))
		return
	}

	user, err := h.historyUsecase.GetUser(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetHistory returns a user with their confirmed transactions in
// insertion order
// GET /api/v1/users/:address/transactions?page=1&limit=20
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		response.Error(c, domainerrors.BadRequest("address is required"))
		return
	}

	var pageQuery utils.PaginationParams
	if err := c.ShouldBindQuery(&pageQuery); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	params := utils.GetPaginationParams(pageQuery.Page, pageQuery.Limit)

	history, err := h.historyUsecase.GetHistory(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	transactions := history.Transactions
	if transactions == nil {
		transactions = []*entities.TransactionRecord{}
	}
	total := int64(len(transactions))

	if params.Limit > 0 {
		offset := params.CalculateOffset()
		if offset > len(transactions) {
			offset = len(transactions)
		}
		end := offset + params.Limit
		if end > len(transactions) {
			end = len(transactions)
		}
		transactions = transactions[offset:end]
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         history.User,
		"transactions": transactions,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
