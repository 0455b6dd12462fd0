package tests

import (
	"context"
	"testing"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cierraTurno abre un turno, registra los movimientos y lo cierra reportando
// el efectivo y sueldo dados. Devuelve el id del turno cerrado.
func cierraTurno(t *testing.T, turnos *memTurnoRepo, caja *memCajaRepo, caller service.Caller, cajaInicial string, movimientos []model.MovimientoCaja, efectivo, sueldo string) uuid.UUID {
	t.Helper()
	svc := service.NewTurnoService(turnos, caja, nil)
	_, err := svc.Iniciar(context.Background(), caller, dto.IniciarTurnoRequest{
		TipoTurno: model.TurnoDia, CajaInicial: dec(cajaInicial),
	})
	require.NoError(t, err)
	turno, err := turnos.FindActivo(context.Background())
	require.NoError(t, err)

	for i := range movimientos {
		movimientos[i].TurnoID = turno.ID
		require.NoError(t, caja.CreateMovimientoTx(nil, &movimientos[i]))
	}
	_, err = svc.Cerrar(context.Background(), caller, dto.CerrarTurnoRequest{
		EfectivoReportado: dec(efectivo),
		SueldoReportado:   dec(sueldo),
	})
	require.NoError(t, err)
	return turno.ID
}

func TestReporteTurnosInvitadoDenegado(t *testing.T) {
	svc := service.NewReporteService(newMemTurnoRepo(), newMemCajaRepo())
	invitado := service.Caller{ID: uuid.New(), Username: "visita", Rol: model.RolInvitado}

	_, err := svc.ReporteTurnos(context.Background(), invitado, nil, nil)
	require.Error(t, err)
	assert.True(t, apierror.IsPermission(err))
}

// La fila de un turno cerrado reproduce exactamente la aritmetica del cierre
// a partir del libro de movimientos.
func TestReporteTurnoCerrado(t *testing.T) {
	turnos := newMemTurnoRepo()
	caja := newMemCajaRepo()
	caller := callerEmpleado()

	turnoID := cierraTurno(t, turnos, caja, caller, "1000", []model.MovimientoCaja{
		{Tipo: model.MovimientoEstancia, Monto: dec("500"), MetodoPago: model.PagoEfectivo},
		{Tipo: model.MovimientoProducto, Monto: dec("100"), MetodoPago: model.PagoEfectivo},
		{Tipo: model.MovimientoExtra, Monto: dec("150"), MetodoPago: model.PagoTransferencia},
	}, "1405", "200")

	svc := service.NewReporteService(turnos, caja)
	rows, err := svc.ReporteTurnos(context.Background(), callerAdmin(), nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, turnoID.String(), row.TurnoID)
	assert.True(t, row.TotalEfectivo.Equal(dec("600")))
	assert.True(t, row.TotalTransferencia.Equal(dec("150")))
	assert.True(t, row.TotalIngresos.Equal(dec("750")))
	assert.False(t, row.SinIngresos)
	require.NotNil(t, row.EfectivoEsperado)
	assert.True(t, row.EfectivoEsperado.Equal(dec("1400")))
	require.NotNil(t, row.Diferencia)
	assert.True(t, row.Diferencia.Equal(dec("5")))
	require.NotNil(t, row.Sueldo)
	assert.True(t, row.Sueldo.Equal(dec("200")))
	assert.NotNil(t, row.FechaFin)
}

func TestReporteTurnosNoAdminSoloVeLosSuyos(t *testing.T) {
	turnos := newMemTurnoRepo()
	caja := newMemCajaRepo()
	maria := callerEmpleado()
	pedro := service.Caller{ID: uuid.New(), Username: "pedro", Rol: model.RolEmpleado}

	cierraTurno(t, turnos, caja, maria, "100", nil, "100", "0")
	cierraTurno(t, turnos, caja, pedro, "200", nil, "200", "0")

	svc := service.NewReporteService(turnos, caja)

	mios, err := svc.ReporteTurnos(context.Background(), maria, nil, nil)
	require.NoError(t, err)
	assert.Len(t, mios, 1)

	todos, err := svc.ReporteTurnos(context.Background(), callerAdmin(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestReportePorEmpleadoSoloAdmin(t *testing.T) {
	svc := service.NewReporteService(newMemTurnoRepo(), newMemCajaRepo())

	_, err := svc.ReportePorEmpleado(context.Background(), callerEmpleado())
	require.Error(t, err)
	assert.True(t, apierror.IsPermission(err))
}

func TestReportePorEmpleadoAgrupaTurnos(t *testing.T) {
	turnos := newMemTurnoRepo()
	caja := newMemCajaRepo()
	maria := callerEmpleado()

	cierraTurno(t, turnos, caja, maria, "100", []model.MovimientoCaja{
		{Tipo: model.MovimientoEstancia, Monto: dec("300"), MetodoPago: model.PagoEfectivo},
	}, "400", "0")
	cierraTurno(t, turnos, caja, maria, "100", nil, "100", "50")

	svc := service.NewReporteService(turnos, caja)
	rows, err := svc.ReportePorEmpleado(context.Background(), callerAdmin())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, maria.ID.String(), row.EmpleadoID)
	assert.Equal(t, 2, row.Turnos)
	assert.Equal(t, 1, row.TurnosSinIngresos)
	assert.True(t, row.TotalEfectivo.Equal(dec("300")))
	assert.True(t, row.TotalIngresos.Equal(dec("300")))
	assert.True(t, row.TotalSueldos.Equal(dec("50")))
	// turno 1: 400 - (100+300-0) = 0; turno 2: 100 - (100+0-50) = 50
	assert.True(t, row.TotalDiferencias.Equal(dec("50")), "diferencias: %s", row.TotalDiferencias)
}

func TestResumenDiarioSoloAdmin(t *testing.T) {
	svc := service.NewReporteService(newMemTurnoRepo(), newMemCajaRepo())

	_, err := svc.ResumenDiario(context.Background(), callerEmpleado(), nil)
	require.Error(t, err)
	assert.True(t, apierror.IsPermission(err))
}

func TestResumenDiarioAgregaTurnosDelDia(t *testing.T) {
	turnos := newMemTurnoRepo()
	caja := newMemCajaRepo()
	maria := callerEmpleado()

	cierraTurno(t, turnos, caja, maria, "100", []model.MovimientoCaja{
		{Tipo: model.MovimientoProducto, Monto: dec("80"), MetodoPago: model.PagoEfectivo},
		{Tipo: model.MovimientoExtra, Monto: dec("20"), MetodoPago: model.PagoTransferencia},
	}, "180", "0")

	// un turno de ayer queda fuera de la ventana
	ayer := &model.Turno{
		UsuarioID: maria.ID, TipoTurno: model.TurnoNoche,
		FechaInicio: time.Now().Add(-48 * time.Hour), CajaInicial: dec("100"),
	}
	require.NoError(t, turnos.Create(context.Background(), ayer))

	svc := service.NewReporteService(turnos, caja)
	resumen, err := svc.ResumenDiario(context.Background(), callerAdmin(), nil)
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format("2006-01-02"), resumen.Fecha)
	assert.Equal(t, 1, resumen.Turnos)
	assert.Equal(t, 0, resumen.TurnosSinIngresos)
	assert.True(t, resumen.TotalEfectivo.Equal(dec("80")))
	assert.True(t, resumen.TotalTransferencia.Equal(dec("20")))
	assert.True(t, resumen.TotalIngresos.Equal(dec("100")))
}

func TestReporteTurnoInexistente(t *testing.T) {
	svc := service.NewReporteService(newMemTurnoRepo(), newMemCajaRepo())

	_, err := svc.ReporteTurno(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsNotFound(err))
}
