package handler

import (
	"marketplace-wallet/internal/adapter/http/dto"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/pkg/apperror"
	"marketplace-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler serves the admin review queue for payouts.
type AdminHandler struct {
	withdrawals ports.WithdrawalService
	log         zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(withdrawals ports.WithdrawalService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{withdrawals: withdrawals, log: log}
}

// Approve handles POST /api/v1/admin/withdrawals/:id/approve and then
// starts the transfer. A failed start leaves the request approved and is
// reported in initiation_error so the admin can retry.
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	approved, err := h.withdrawals.Approve(ctx, reqID, id.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	started, err := h.withdrawals.InitiateTransfer(ctx, reqID)
	if err != nil {
		h.log.Warn().Err(err).Str("withdrawal_id", reqID.String()).Msg("transfer initiation after approval failed")
		out := dto.FromWithdrawal(approved)
		out.InitiationError = apperror.Code(err)
		response.OK(c, out)
		return
	}
	response.OK(c, dto.FromWithdrawal(started))
}

// Initiate handles POST /api/v1/admin/withdrawals/:id/initiate.
func (h *AdminHandler) Initiate(c *gin.Context) {
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.withdrawals.InitiateTransfer(c.Request.Context(), reqID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// Reject handles POST /api/v1/admin/withdrawals/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
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

	w, err := h.withdrawals.Reject(c.Request.Context(), reqID, id.SubjectID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// VerifyTransfer handles POST /api/v1/admin/withdrawals/:id/verify.
func (h *AdminHandler) VerifyTransfer(c *gin.Context) {
	reqID, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.withdrawals.VerifyTransferStatus(c.Request.Context(), reqID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}

// ResolveReversal handles POST /api/v1/admin/withdrawals/:id/reversal/resolve.
func (h *AdminHandler) ResolveReversal(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	reqID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ResolveReversalRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.withdrawals.ResolveReversal(c.Request.Context(), reqID, id.SubjectID, *req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromWithdrawal(w))
}
