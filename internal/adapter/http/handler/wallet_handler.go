package handler

import (
	"marketplace-wallet/internal/adapter/http/dto"
	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler serves balance, history and top-ups for the caller's wallet.
type WalletHandler struct {
	ledger  ports.LedgerService
	wallets ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.LedgerService, wallets ports.WalletService) *WalletHandler {
	return &WalletHandler{ledger: ledger, wallets: wallets}
}

// GetBalance handles GET /api/v1/wallet/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	acct, err := h.ledger.Account(c.Request.Context(), id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		AccountID: acct.ID.String(),
		Balance:   acct.Balance,
		Currency:  acct.Currency,
	})
}

// History handles GET /api/v1/wallet/entries.
func (h *WalletHandler) History(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var q dto.HistoryQuery
	if !bindQuery(c, &q) {
		return
	}

	acct, err := h.ledger.Account(c.Request.Context(), id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := ports.LedgerListParams{AccountID: acct.ID}
	params.Page, params.PageSize = page(q.Page, q.PageSize)
	if q.Direction != "" {
		d := domain.EntryDirection(q.Direction)
		params.Direction = &d
	}

	entries, total, err := h.ledger.History(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.FromEntry(&entries[i]))
	}
	response.OK(c, dto.NewListResponse(items, total, params.Page, params.PageSize))
}

// InitiateTopup handles POST /api/v1/wallet/topups.
func (h *WalletHandler) InitiateTopup(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req dto.TopupRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.wallets.InitiateTopup(c.Request.Context(), id.SubjectID, req.Email, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, session.Reference)
	response.Created(c, dto.TopupResponse{
		Reference:        session.Reference,
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
	})
}

// VerifyTopup handles POST /api/v1/wallet/topups/:reference/verify.
func (h *WalletHandler) VerifyTopup(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reference := c.Param("reference")
	if reference == "" || len(reference) > 100 {
		response.Error(c, apperror.Validation("invalid reference"))
		return
	}

	entry, err := h.wallets.VerifyTopup(c.Request.Context(), id.SubjectID, reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, reference)
	response.OK(c, dto.FromEntry(entry))
}
