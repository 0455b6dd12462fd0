package handler

import (
	"net/http"

	"hostalpos/internal/dto"
	"hostalpos/internal/middleware"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type EstanciasHandler struct{ svc service.EstanciaService }

func NewEstanciasHandler(svc service.EstanciaService) *EstanciasHandler {
	return &EstanciasHandler{svc: svc}
}

// Abrir godoc
// @Summary Abre una estancia y cobra la tarifa
// @Tags estancias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirEstanciaRequest true "Habitacion, tarifa y metodo de pago"
// @Success 201 {object} dto.EstanciaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/estancias [post]
func (h *EstanciasHandler) Abrir(c *gin.Context) {
	var req dto.AbrirEstanciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.GetCaller(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HorasExtra godoc
// @Summary Agrega horas extra a una estancia activa y las cobra
// @Tags estancias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estancia"
// @Param body body dto.HorasExtraRequest true "Horas, precio por hora y metodo de pago"
// @Success 200 {object} dto.EstanciaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/estancias/{id}/horas-extra [post]
func (h *EstanciasHandler) HorasExtra(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.HorasExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarHorasExtra(c.Request.Context(), middleware.GetCaller(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra una estancia (salida del huesped, sin cobro)
// @Tags estancias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estancia"
// @Param body body dto.CerrarEstanciaRequest true "Hora de salida real opcional"
// @Success 200 {object} dto.EstanciaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/estancias/{id}/cerrar [post]
func (h *EstanciasHandler) Cerrar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CerrarEstanciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), middleware.GetCaller(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activas lists every open stay, oldest check-in first.
func (h *EstanciasHandler) Activas(c *gin.Context) {
	resp, err := h.svc.ListarActivas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
