package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/ports"
	"github.com/admindesk/directory-system/internal/core/service"
)

// ConfirmationHandler exposes the confirmation gate to the dashboard: one
// pending request at a time, resolved by confirm or cancel.
type ConfirmationHandler struct {
	gate    *service.ConfirmationGate
	service ports.DirectoryService
}

func NewConfirmationHandler(gate *service.ConfirmationGate, svc ports.DirectoryService) *ConfirmationHandler {
	return &ConfirmationHandler{gate: gate, service: svc}
}

// Show handles GET /v1/confirmation.
//
// @Summary      Pending confirmation, if any
// @Tags         confirmation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  confirmationResponse
// @Router       /v1/confirmation [get]
func (h *ConfirmationHandler) Show(c echo.Context) error {
	resp := confirmationResponse{Visible: h.gate.Visible()}
	if resp.Visible {
		resp.Title = h.gate.Title()
		resp.Message = h.gate.Message()
	}
	return c.JSON(http.StatusOK, resp)
}

// Confirm handles POST /v1/confirmation/confirm. The deferred action runs
// synchronously; its outcome is read back off the coordinator's error state.
//
// @Summary      Confirm the pending request
// @Tags         confirmation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/confirmation/confirm [post]
func (h *ConfirmationHandler) Confirm(c echo.Context) error {
	if !h.gate.Confirm() {
		return domain.ErrNoPendingConfirmation
	}
	if msg := h.service.LastError(); msg != "" {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": msg})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Cancel handles POST /v1/confirmation/cancel. The held action is discarded
// without executing.
//
// @Summary      Cancel the pending request
// @Tags         confirmation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/confirmation/cancel [post]
func (h *ConfirmationHandler) Cancel(c echo.Context) error {
	if !h.gate.Cancel() {
		return domain.ErrNoPendingConfirmation
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}
