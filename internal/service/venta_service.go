package service

import (
	"context"
	"errors"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaService interface {
	Vender(ctx context.Context, caller Caller, req dto.VenderProductoRequest) (*dto.VentaResponse, error)
}

type ventaService struct {
	producto repository.ProductoRepository
	turno    repository.TurnoRepository
	caja     repository.CajaRepository
	estancia repository.EstanciaRepository
}

func NewVentaService(
	producto repository.ProductoRepository,
	turno repository.TurnoRepository,
	caja repository.CajaRepository,
	estancia repository.EstanciaRepository,
) VentaService {
	return &ventaService{producto: producto, turno: turno, caja: caja, estancia: estancia}
}

// ── Vender ───────────────────────────────────────────────────────────────────
// Stock decrement and ledger write are one transaction: a failure after the
// decrement rolls the stock back. The decrement carries its own guard in the
// WHERE clause, so stock can never go negative under concurrent sales.

func (s *ventaService) Vender(ctx context.Context, caller Caller, req dto.VenderProductoRequest) (*dto.VentaResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarCaja) {
		return nil, apierror.Permission("no tiene permiso para vender productos")
	}
	if req.Cantidad <= 0 {
		return nil, apierror.Validation("la cantidad debe ser mayor a cero")
	}

	// Friendly pre-check; the transaction re-resolves the shift under a lock.
	if _, err := s.turno.FindActivo(ctx); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflict("no hay un turno activo")
		}
		return nil, err
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("producto_id invalido")
	}
	producto, err := s.producto.FindByID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if !producto.Activo {
		return nil, apierror.Conflict("el producto no esta activo")
	}
	// Pre-flight stock check for a friendly error; the conditional UPDATE
	// inside the transaction is the authority.
	if producto.Stock < req.Cantidad {
		return nil, apierror.Conflict("stock insuficiente")
	}

	var estanciaID *uuid.UUID
	if req.EstanciaID != nil {
		parsed, err := uuid.Parse(*req.EstanciaID)
		if err != nil {
			return nil, apierror.Validation("estancia_id invalido")
		}
		if _, err := s.estancia.FindByID(ctx, parsed); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("estancia no encontrada")
			}
			return nil, err
		}
		estanciaID = &parsed
	}

	monto := producto.Precio.Mul(decimalFromInt(req.Cantidad))
	cantidad := req.Cantidad
	var mov *model.MovimientoCaja
	txErr := runTx(ctx, s.producto.DB(), func(tx *gorm.DB) error {
		// Shared lock on the shift row so a concurrent close waits for this
		// sale to commit or has already flipped the shift.
		turno, err := s.turno.FindActivoCompartidoTx(tx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.Conflict("no hay un turno activo")
			}
			return err
		}
		mov = &model.MovimientoCaja{
			TurnoID:    turno.ID,
			Tipo:       model.MovimientoProducto,
			Monto:      monto,
			MetodoPago: req.MetodoPago,
			ProductoID: &producto.ID,
			EstanciaID: estanciaID,
			Cantidad:   &cantidad,
		}
		if err := validarMovimiento(mov); err != nil {
			return err
		}
		if err := s.producto.DescontarStockTx(tx, producto.ID, req.Cantidad); err != nil {
			if errors.Is(err, repository.ErrStockInsuficiente) {
				return apierror.Conflict("stock insuficiente")
			}
			return err
		}
		return s.caja.CreateMovimientoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.VentaResponse{
		MovimientoID:  mov.ID.String(),
		Producto:      producto.Nombre,
		Cantidad:      req.Cantidad,
		Monto:         monto,
		MetodoPago:    req.MetodoPago,
		StockRestante: producto.Stock - req.Cantidad,
		EstanciaID:    req.EstanciaID,
	}, nil
}
