package tests

import (
	"context"
	"testing"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Habitaciones ─────────────────────────────────────────────────────────────

func TestCrearHabitacionConTipo(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	svc := service.NewHabitacionService(habitaciones, newMemEstanciaRepo())

	tipo, err := svc.CrearTipo(context.Background(), dto.CrearTipoHabitacionRequest{
		Nombre: "doble", Descripcion: "dos camas",
	})
	require.NoError(t, err)

	resp, err := svc.Crear(context.Background(), dto.CrearHabitacionRequest{Numero: 201, TipoID: tipo.ID})
	require.NoError(t, err)
	assert.Equal(t, 201, resp.Numero)
	assert.Equal(t, "doble", resp.Tipo)
	assert.True(t, resp.Activa)
}

func TestCrearHabitacionTipoInactivoFalla(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	svc := service.NewHabitacionService(habitaciones, newMemEstanciaRepo())

	tipo, err := svc.CrearTipo(context.Background(), dto.CrearTipoHabitacionRequest{Nombre: "suite"})
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarTipo(context.Background(), uuid.MustParse(tipo.ID)))

	_, err = svc.Crear(context.Background(), dto.CrearHabitacionRequest{Numero: 301, TipoID: tipo.ID})
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

func TestCrearTipoDuplicadoFalla(t *testing.T) {
	svc := service.NewHabitacionService(newMemHabitacionRepo(), newMemEstanciaRepo())

	_, err := svc.CrearTipo(context.Background(), dto.CrearTipoHabitacionRequest{Nombre: "sencilla"})
	require.NoError(t, err)
	_, err = svc.CrearTipo(context.Background(), dto.CrearTipoHabitacionRequest{Nombre: "sencilla"})
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

func TestDesactivarHabitacionOcupadaFalla(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	estancias := newMemEstanciaRepo()
	svc := service.NewHabitacionService(habitaciones, estancias)

	tipo, err := svc.CrearTipo(context.Background(), dto.CrearTipoHabitacionRequest{Nombre: "sencilla"})
	require.NoError(t, err)
	hab, err := svc.Crear(context.Background(), dto.CrearHabitacionRequest{Numero: 101, TipoID: tipo.ID})
	require.NoError(t, err)

	habID := uuid.MustParse(hab.ID)
	require.NoError(t, estancias.CreateTx(nil, &model.Estancia{
		HabitacionID: habID, TarifaID: uuid.New(), TurnoInicioID: uuid.New(), Activa: true,
	}))

	err = svc.Desactivar(context.Background(), habID)
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

// ── Tarifas ──────────────────────────────────────────────────────────────────

func tipoDePrueba(t *testing.T, habitaciones *memHabitacionRepo) *model.TipoHabitacion {
	t.Helper()
	tipo := &model.TipoHabitacion{Nombre: "sencilla", Activo: true}
	require.NoError(t, habitaciones.CreateTipo(context.Background(), tipo))
	return tipo
}

func TestCrearTarifaDiurna(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	tipo := tipoDePrueba(t, habitaciones)
	svc := service.NewTarifaService(newMemTarifaRepo(), habitaciones)

	resp, err := svc.Crear(context.Background(), dto.CrearTarifaRequest{
		Nombre: "3 horas", Horas: 3, Precio: dec("500"),
		TipoHabitacionID: tipo.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Horas)
	assert.True(t, resp.Precio.Equal(dec("500")))
	assert.False(t, resp.EsNocturna)
}

func TestCrearTarifaNocturnaSinHorarioFalla(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	tipo := tipoDePrueba(t, habitaciones)
	svc := service.NewTarifaService(newMemTarifaRepo(), habitaciones)

	_, err := svc.Crear(context.Background(), dto.CrearTarifaRequest{
		Nombre: "Noche completa", Horas: 12, Precio: dec("1200"),
		EsNocturna:       true,
		TipoHabitacionID: tipo.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestCrearTarifaDiurnaConHorarioNocturnoFalla(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	tipo := tipoDePrueba(t, habitaciones)
	svc := service.NewTarifaService(newMemTarifaRepo(), habitaciones)

	inicio := "22:00"
	_, err := svc.Crear(context.Background(), dto.CrearTarifaRequest{
		Nombre: "6 horas", Horas: 6, Precio: dec("800"),
		HoraInicioNocturna: &inicio,
		TipoHabitacionID:   tipo.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestCrearTarifaPrecioInvalidoFalla(t *testing.T) {
	habitaciones := newMemHabitacionRepo()
	tipo := tipoDePrueba(t, habitaciones)
	svc := service.NewTarifaService(newMemTarifaRepo(), habitaciones)

	_, err := svc.Crear(context.Background(), dto.CrearTarifaRequest{
		Nombre: "gratis", Horas: 3, Precio: dec("0"),
		TipoHabitacionID: tipo.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestCrearProducto(t *testing.T) {
	svc := service.NewProductoService(newMemProductoRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Gaseosa", Precio: dec("60"), Stock: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gaseosa", resp.Nombre)
	assert.Equal(t, 24, resp.Stock)
	assert.True(t, resp.Activo)
}

func TestCrearProductoDuplicadoFalla(t *testing.T) {
	svc := service.NewProductoService(newMemProductoRepo())

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Gaseosa", Precio: dec("60")})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Gaseosa", Precio: dec("70")})
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

func TestAjustarStock(t *testing.T) {
	productos := newMemProductoRepo()
	svc := service.NewProductoService(productos)
	admin := callerAdmin()

	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Agua", Precio: dec("50"), Stock: 10,
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	resp, err := svc.AjustarStock(context.Background(), admin, id, dto.AjustarStockRequest{
		Delta: 12, Motivo: "reposicion semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, 22, resp.Stock)

	resp, err = svc.AjustarStock(context.Background(), admin, id, dto.AjustarStockRequest{
		Delta: -2, Motivo: "rotura en deposito",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Stock)
}

func TestAjustarStockDejariaNegativoFalla(t *testing.T) {
	svc := service.NewProductoService(newMemProductoRepo())
	admin := callerAdmin()

	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Agua", Precio: dec("50"), Stock: 3,
	})
	require.NoError(t, err)

	_, err = svc.AjustarStock(context.Background(), admin, uuid.MustParse(creado.ID), dto.AjustarStockRequest{
		Delta: -5, Motivo: "conteo fisico",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

func TestAjustarStockSinPermisoFalla(t *testing.T) {
	svc := service.NewProductoService(newMemProductoRepo())

	_, err := svc.AjustarStock(context.Background(), callerEmpleado(), uuid.New(), dto.AjustarStockRequest{
		Delta: 1, Motivo: "no deberia llegar",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsPermission(err))
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	svc := service.NewProductoService(newMemProductoRepo())

	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Agua", Precio: dec("50")})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	activos, err := svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	require.NoError(t, svc.Reactivar(context.Background(), id))
	activos, err = svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}
