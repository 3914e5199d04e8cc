package handler

import (
	"marketplace-wallet/internal/adapter/http/dto"
	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// WithdrawalHandler serves the seller side of payouts. Get and List are
// shared with admins; the service scopes results by identity.
type WithdrawalHandler struct {
	withdrawals ports.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawals ports.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// Create handles POST /api/v1/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateWithdrawalRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.withdrawals.Create(c.Request.Context(), ports.CreateWithdrawalRequest{
		SellerID:      id.SubjectID,
		Amount:        req.Amount,
		Type:          domain.DestinationType(req.Type),
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, w.ID.String())
	response.Created(c, dto.FromWithdrawal(w))
}

// List handles GET /api/v1/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var q dto.WithdrawalQuery
	if !bindQuery(c, &q) {
		return
	}

	params := domain.WithdrawalListParams{}
	params.Page, params.PageSize = page(q.Page, q.PageSize)
	if q.Status != "" {
		s := domain.WithdrawalStatus(q.Status)
		params.Status = &s
	}

	items, total, err := h.withdrawals.List(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WithdrawalResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromWithdrawal(&items[i]))
	}
	response.OK(c, dto.NewListResponse(out, total, params.Page, params.PageSize))
}

// Get handles GET /api/v1/withdrawals/:id.
func (h *WithdrawalHandler) Get(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.withdrawals.Get(c.Request.Context(), id, reqID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// Cancel handles DELETE /api/v1/withdrawals/:id.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.withdrawals.Cancel(c.Request.Context(), reqID, id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// RequestOtp handles POST /api/v1/withdrawals/:id/otp. It issues a fresh
// code and invalidates any earlier one.
func (h *WithdrawalHandler) RequestOtp(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.withdrawals.RequestOtp(c.Request.Context(), reqID, id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// ConfirmOtp handles POST /api/v1/withdrawals/:id/otp/confirm.
func (h *WithdrawalHandler) ConfirmOtp(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ConfirmOtpRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.withdrawals.ConfirmOtp(c.Request.Context(), reqID, id.SubjectID, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// RequestReversal handles POST /api/v1/withdrawals/:id/reversal.
func (h *WithdrawalHandler) RequestReversal(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.withdrawals.RequestReversal(c.Request.Context(), id, reqID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}
