package handler

import (
	"net/http"
	"strconv"

	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type TarifasHandler struct{ svc service.TarifaService }

func NewTarifasHandler(svc service.TarifaService) *TarifasHandler {
	return &TarifasHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una tarifa para un tipo de habitacion
// @Tags tarifas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTarifaRequest true "Datos de la tarifa"
// @Success 201 {object} dto.TarifaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/tarifas [post]
func (h *TarifasHandler) Crear(c *gin.Context) {
	var req dto.CrearTarifaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TarifasHandler) Listar(c *gin.Context) {
	incluirInactivas, _ := strconv.ParseBool(c.DefaultQuery("incluir_inactivas", "false"))
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TarifasHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TarifasHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
