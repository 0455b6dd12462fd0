package dto

import "github.com/shopspring/decimal"

// ─── Tipos de habitacion ─────────────────────────────────────────────────────

type CrearTipoHabitacionRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
}

type TipoHabitacionResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

// ─── Habitaciones ────────────────────────────────────────────────────────────

type CrearHabitacionRequest struct {
	Numero int    `json:"numero"  validate:"required,min=1"`
	TipoID string `json:"tipo_id" validate:"required,uuid"`
}

type HabitacionResponse struct {
	ID     string `json:"id"`
	Numero int    `json:"numero"`
	Tipo   string `json:"tipo"`
	Activa bool   `json:"activa"`
}

// ─── Tarifas ─────────────────────────────────────────────────────────────────

type CrearTarifaRequest struct {
	Nombre             string          `json:"nombre"  validate:"required"`
	Horas              int             `json:"horas"   validate:"required,gt=0"`
	Precio             decimal.Decimal `json:"precio"  validate:"gt=0"`
	EsNocturna         bool            `json:"es_nocturna"`
	HoraInicioNocturna *string         `json:"hora_inicio_nocturna"`
	HoraFinNocturna    *string         `json:"hora_fin_nocturna"`
	TipoHabitacionID   string          `json:"tipo_habitacion_id" validate:"required,uuid"`
}

type TarifaResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Horas              int             `json:"horas"`
	Precio             decimal.Decimal `json:"precio"`
	EsNocturna         bool            `json:"es_nocturna"`
	HoraInicioNocturna *string         `json:"hora_inicio_nocturna,omitempty"`
	HoraFinNocturna    *string         `json:"hora_fin_nocturna,omitempty"`
	TipoHabitacion     string          `json:"tipo_habitacion"`
	Activa             bool            `json:"activa"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre string          `json:"nombre" validate:"required"`
	Precio decimal.Decimal `json:"precio" validate:"gt=0"`
	Stock  int             `json:"stock"  validate:"min=0"`
}

type AjustarStockRequest struct {
	// Delta is positive for restock, negative for shrinkage adjustments.
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Stock  int             `json:"stock"`
	Activo bool            `json:"activo"`
}

// ─── Panel de ocupacion ──────────────────────────────────────────────────────

// PanelHabitacion is one row of the front-desk occupancy board.
type PanelHabitacion struct {
	HabitacionID         string  `json:"habitacion_id"`
	Numero               int     `json:"numero"`
	Tipo                 string  `json:"tipo"`
	Ocupada              bool    `json:"ocupada"`
	EstanciaID           *string `json:"estancia_id,omitempty"`
	HoraEntrada          *string `json:"hora_entrada,omitempty"`
	HoraSalidaProgramada *string `json:"hora_salida_programada,omitempty"`
}

type PanelResponse struct {
	Habitaciones []PanelHabitacion `json:"habitaciones"`
	Ocupadas     int               `json:"ocupadas"`
	Libres       int               `json:"libres"`
	GeneradoEn   string            `json:"generado_en"`
}
