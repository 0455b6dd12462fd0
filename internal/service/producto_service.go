package service

import (
	"context"
	"errors"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error)
	AjustarStock(ctx context.Context, caller Caller, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if !req.Precio.IsPositive() {
		return nil, apierror.Validation("el precio debe ser mayor a cero")
	}
	if req.Stock < 0 {
		return nil, apierror.Validation("el stock inicial no puede ser negativo")
	}
	producto := &model.Producto{
		Nombre: req.Nombre,
		Precio: req.Precio,
		Stock:  req.Stock,
		Activo: true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un producto con ese nombre")
		}
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) AjustarStock(ctx context.Context, caller Caller, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	if !tieneCapacidad(caller.Rol, capAdministrarCatalogo) {
		return nil, apierror.Permission("no tiene permiso para ajustar stock")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		if errors.Is(err, repository.ErrStockInsuficiente) {
			return nil, apierror.Conflict("el ajuste dejaria el stock negativo")
		}
		return nil, err
	}

	log.Info().
		Str("producto_id", id.String()).
		Int("delta", req.Delta).
		Str("motivo", req.Motivo).
		Str("usuario", caller.Username).
		Msg("ajuste manual de stock")

	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	return s.repo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:     p.ID.String(),
		Nombre: p.Nombre,
		Precio: p.Precio,
		Stock:  p.Stock,
		Activo: p.Activo,
	}
}
