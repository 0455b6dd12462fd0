package handler

import (
	"net/http"
	"strconv"

	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type HabitacionesHandler struct{ svc service.HabitacionService }

func NewHabitacionesHandler(svc service.HabitacionService) *HabitacionesHandler {
	return &HabitacionesHandler{svc: svc}
}

// ── Tipos de habitacion ──────────────────────────────────────────────────────

func (h *HabitacionesHandler) CrearTipo(c *gin.Context) {
	var req dto.CrearTipoHabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTipo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HabitacionesHandler) ListarTipos(c *gin.Context) {
	resp, err := h.svc.ListarTipos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HabitacionesHandler) DesactivarTipo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarTipo(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Habitaciones ─────────────────────────────────────────────────────────────

// Crear godoc
// @Summary Crea una habitacion asignada a un tipo activo
// @Tags habitaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearHabitacionRequest true "Numero y tipo"
// @Success 201 {object} dto.HabitacionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/habitaciones [post]
func (h *HabitacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearHabitacionRequest
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

func (h *HabitacionesHandler) Listar(c *gin.Context) {
	incluirInactivas, _ := strconv.ParseBool(c.DefaultQuery("incluir_inactivas", "false"))
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HabitacionesHandler) Desactivar(c *gin.Context) {
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

func (h *HabitacionesHandler) Reactivar(c *gin.Context) {
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
