package handler

import (
	"net/http"

	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type PanelHandler struct{ svc service.PanelService }

func NewPanelHandler(svc service.PanelService) *PanelHandler { return &PanelHandler{svc: svc} }

// Panel godoc
// @Summary Tablero de ocupacion de habitaciones
// @Tags panel
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PanelResponse
// @Router /v1/panel [get]
func (h *PanelHandler) Panel(c *gin.Context) {
	resp, err := h.svc.Panel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
