package tests

// In-memory repository stubs shared by the service tests. They reproduce the
// behavior the services rely on, including the duplicate-key errors the
// partial unique indexes would raise in Postgres.

import (
	"context"
	"time"

	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Turnos ───────────────────────────────────────────────────────────────────

type memTurnoRepo struct {
	turnos map[uuid.UUID]*model.Turno
	orden  []uuid.UUID
}

func newMemTurnoRepo() *memTurnoRepo {
	return &memTurnoRepo{turnos: make(map[uuid.UUID]*model.Turno)}
}

func (r *memTurnoRepo) Create(_ context.Context, t *model.Turno) error {
	// uq_turnos_activo: a second active shift is a duplicate key
	for _, x := range r.turnos {
		if x.Activo && t.Activo {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.turnos[t.ID] = t
	r.orden = append(r.orden, t.ID)
	return nil
}

// Reads hand back copies so a caller mutating the result does not touch the
// stored record until an explicit write, mirroring a row read from Postgres.
func (r *memTurnoRepo) activo() *model.Turno {
	for _, id := range r.orden {
		if r.turnos[id].Activo {
			return r.turnos[id]
		}
	}
	return nil
}

func (r *memTurnoRepo) FindActivo(_ context.Context) (*model.Turno, error) {
	if t := r.activo(); t != nil {
		c := *t
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTurnoRepo) FindActivoTx(_ *gorm.DB) (*model.Turno, error) {
	return r.FindActivo(context.Background())
}

func (r *memTurnoRepo) FindActivoCompartidoTx(_ *gorm.DB) (*model.Turno, error) {
	return r.FindActivo(context.Background())
}

func (r *memTurnoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTurnoRepo) CerrarTx(_ *gorm.DB, t *model.Turno) error {
	// Mirrors the conditional UPDATE: only an active stored row closes.
	existing, ok := r.turnos[t.ID]
	if !ok || !existing.Activo {
		return repository.ErrTurnoYaCerrado
	}
	c := *t
	c.Activo = false
	r.turnos[t.ID] = &c
	return nil
}

func (r *memTurnoRepo) List(_ context.Context, f repository.TurnoFilter) ([]model.Turno, error) {
	var result []model.Turno
	for _, id := range r.orden {
		t := r.turnos[id]
		if f.UsuarioID != nil && t.UsuarioID != *f.UsuarioID {
			continue
		}
		if f.Activo != nil && t.Activo != *f.Activo {
			continue
		}
		if f.Desde != nil && t.FechaInicio.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && !t.FechaInicio.Before(*f.Hasta) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *memTurnoRepo) DB() *gorm.DB { return nil }

var _ repository.TurnoRepository = (*memTurnoRepo)(nil)

// ── Caja ─────────────────────────────────────────────────────────────────────

type memCajaRepo struct {
	movimientos []model.MovimientoCaja
}

func newMemCajaRepo() *memCajaRepo { return &memCajaRepo{} }

func (r *memCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Fecha.IsZero() {
		m.Fecha = time.Now()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *memCajaRepo) ListMovimientos(_ context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var result []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.TurnoID == turnoID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memCajaRepo) SumPorMetodo(_ context.Context, turnoID uuid.UUID) (map[string]decimal.Decimal, error) {
	sums := map[string]decimal.Decimal{
		model.PagoEfectivo:      decimal.Zero,
		model.PagoTransferencia: decimal.Zero,
	}
	for _, m := range r.movimientos {
		if m.TurnoID == turnoID {
			sums[m.MetodoPago] = sums[m.MetodoPago].Add(m.Monto)
		}
	}
	return sums, nil
}

func (r *memCajaRepo) SumPorMetodoTx(_ *gorm.DB, turnoID uuid.UUID) (map[string]decimal.Decimal, error) {
	return r.SumPorMetodo(context.Background(), turnoID)
}

func (r *memCajaRepo) CountMovimientos(_ context.Context, turnoID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.movimientos {
		if m.TurnoID == turnoID {
			n++
		}
	}
	return n, nil
}

func (r *memCajaRepo) CountMovimientosTx(_ *gorm.DB, turnoID uuid.UUID) (int64, error) {
	return r.CountMovimientos(context.Background(), turnoID)
}

var _ repository.CajaRepository = (*memCajaRepo)(nil)

// ── Estancias ────────────────────────────────────────────────────────────────

type memEstanciaRepo struct {
	estancias map[uuid.UUID]*model.Estancia
	orden     []uuid.UUID
}

func newMemEstanciaRepo() *memEstanciaRepo {
	return &memEstanciaRepo{estancias: make(map[uuid.UUID]*model.Estancia)}
}

func (r *memEstanciaRepo) CreateTx(_ *gorm.DB, e *model.Estancia) error {
	// uq_estancias_habitacion_activa
	for _, x := range r.estancias {
		if x.Activa && e.Activa && x.HabitacionID == e.HabitacionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.estancias[e.ID] = e
	r.orden = append(r.orden, e.ID)
	return nil
}

func (r *memEstanciaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Estancia, error) {
	e, ok := r.estancias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *memEstanciaRepo) FindActivaPorHabitacion(_ context.Context, habitacionID uuid.UUID) (*model.Estancia, error) {
	for _, id := range r.orden {
		e := r.estancias[id]
		if e.Activa && e.HabitacionID == habitacionID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memEstanciaRepo) ListActivas(_ context.Context) ([]model.Estancia, error) {
	var result []model.Estancia
	for _, id := range r.orden {
		if r.estancias[id].Activa {
			result = append(result, *r.estancias[id])
		}
	}
	return result, nil
}

func (r *memEstanciaRepo) ListPorTurno(_ context.Context, turnoID uuid.UUID) ([]model.Estancia, error) {
	var result []model.Estancia
	for _, id := range r.orden {
		if r.estancias[id].TurnoInicioID == turnoID {
			result = append(result, *r.estancias[id])
		}
	}
	return result, nil
}

func (r *memEstanciaRepo) UpdateTx(_ *gorm.DB, e *model.Estancia) error {
	r.estancias[e.ID] = e
	return nil
}

func (r *memEstanciaRepo) DB() *gorm.DB { return nil }

var _ repository.EstanciaRepository = (*memEstanciaRepo)(nil)

// ── Productos ────────────────────────────────────────────────────────────────

type memProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newMemProductoRepo() *memProductoRepo {
	return &memProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *memProductoRepo) Create(_ context.Context, p *model.Producto) error {
	for _, x := range r.productos {
		if x.Nombre == p.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (r *memProductoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if incluirInactivos || p.Activo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *memProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Stock+delta < 0 {
		return repository.ErrStockInsuficiente
	}
	p.Stock += delta
	return nil
}

func (r *memProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *memProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *memProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*memProductoRepo)(nil)

// ── Habitaciones ─────────────────────────────────────────────────────────────

type memHabitacionRepo struct {
	habitaciones map[uuid.UUID]*model.Habitacion
	tipos        map[uuid.UUID]*model.TipoHabitacion
}

func newMemHabitacionRepo() *memHabitacionRepo {
	return &memHabitacionRepo{
		habitaciones: make(map[uuid.UUID]*model.Habitacion),
		tipos:        make(map[uuid.UUID]*model.TipoHabitacion),
	}
}

func (r *memHabitacionRepo) Create(_ context.Context, h *model.Habitacion) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.habitaciones[h.ID] = h
	return nil
}

func (r *memHabitacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Habitacion, error) {
	h, ok := r.habitaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if h.Tipo == nil {
		h.Tipo = r.tipos[h.TipoID]
	}
	return h, nil
}

func (r *memHabitacionRepo) List(_ context.Context, incluirInactivas bool) ([]model.Habitacion, error) {
	var result []model.Habitacion
	for _, h := range r.habitaciones {
		if incluirInactivas || h.Activa {
			copia := *h
			if copia.Tipo == nil {
				copia.Tipo = r.tipos[copia.TipoID]
			}
			result = append(result, copia)
		}
	}
	return result, nil
}

func (r *memHabitacionRepo) SetActiva(_ context.Context, id uuid.UUID, activa bool) error {
	if h, ok := r.habitaciones[id]; ok {
		h.Activa = activa
	}
	return nil
}

func (r *memHabitacionRepo) CreateTipo(_ context.Context, t *model.TipoHabitacion) error {
	for _, x := range r.tipos {
		if x.Nombre == t.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tipos[t.ID] = t
	return nil
}

func (r *memHabitacionRepo) FindTipoByID(_ context.Context, id uuid.UUID) (*model.TipoHabitacion, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *memHabitacionRepo) ListTipos(_ context.Context) ([]model.TipoHabitacion, error) {
	var result []model.TipoHabitacion
	for _, t := range r.tipos {
		result = append(result, *t)
	}
	return result, nil
}

func (r *memHabitacionRepo) SetTipoActivo(_ context.Context, id uuid.UUID, activo bool) error {
	if t, ok := r.tipos[id]; ok {
		t.Activo = activo
	}
	return nil
}

var _ repository.HabitacionRepository = (*memHabitacionRepo)(nil)

// ── Tarifas ──────────────────────────────────────────────────────────────────

type memTarifaRepo struct {
	tarifas map[uuid.UUID]*model.Tarifa
}

func newMemTarifaRepo() *memTarifaRepo {
	return &memTarifaRepo{tarifas: make(map[uuid.UUID]*model.Tarifa)}
}

func (r *memTarifaRepo) Create(_ context.Context, t *model.Tarifa) error {
	for _, x := range r.tarifas {
		if x.Nombre == t.Nombre && x.TipoHabitacionID == t.TipoHabitacionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tarifas[t.ID] = t
	return nil
}

func (r *memTarifaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tarifa, error) {
	t, ok := r.tarifas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *memTarifaRepo) List(_ context.Context, incluirInactivas bool) ([]model.Tarifa, error) {
	var result []model.Tarifa
	for _, t := range r.tarifas {
		if incluirInactivas || t.Activa {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (r *memTarifaRepo) Update(_ context.Context, t *model.Tarifa) error {
	r.tarifas[t.ID] = t
	return nil
}

func (r *memTarifaRepo) SetActiva(_ context.Context, id uuid.UUID, activa bool) error {
	if t, ok := r.tarifas[id]; ok {
		t.Activa = activa
	}
	return nil
}

var _ repository.TarifaRepository = (*memTarifaRepo)(nil)

// ── Usuarios ─────────────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, x := range r.usuarios {
		if x.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if incluirInactivos || u.Activo {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = activo
	}
	return nil
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)
