package handler

import (
	"net/http"

	"hostalpos/internal/dto"
	"hostalpos/internal/middleware"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Vender godoc
// @Summary Vende un producto descontando stock y registrando el ingreso
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VenderProductoRequest true "Producto, cantidad y metodo de pago"
// @Success 201 {object} dto.VentaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/ventas [post]
func (h *VentasHandler) Vender(c *gin.Context) {
	var req dto.VenderProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Vender(c.Request.Context(), middleware.GetCaller(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
