package dto

import "github.com/shopspring/decimal"

type VenderProductoRequest struct {
	ProductoID string  `json:"producto_id" validate:"required,uuid"`
	Cantidad   int     `json:"cantidad"    validate:"required,gt=0"`
	MetodoPago string  `json:"metodo_pago" validate:"required,oneof=EFECTIVO TRANSFERENCIA"`
	EstanciaID *string `json:"estancia_id" validate:"omitempty,uuid"`
}

type VentaResponse struct {
	MovimientoID  string          `json:"movimiento_id"`
	Producto      string          `json:"producto"`
	Cantidad      int             `json:"cantidad"`
	Monto         decimal.Decimal `json:"monto"`
	MetodoPago    string          `json:"metodo_pago"`
	StockRestante int             `json:"stock_restante"`
	EstanciaID    *string         `json:"estancia_id,omitempty"`
}
