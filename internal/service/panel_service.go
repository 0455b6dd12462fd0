package service

import (
	"context"
	"encoding/json"
	"time"

	"hostalpos/internal/dto"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	panelCacheKey = "panel:ocupacion"
	panelCacheTTL = 5 * time.Minute
)

// PanelService builds the front-desk occupancy board. The board is read far
// more often than it changes, so the rendered response is cached in Redis and
// invalidated whenever a stay opens or closes.
type PanelService interface {
	Panel(ctx context.Context) (*dto.PanelResponse, error)
	Invalidar(ctx context.Context)
}

type panelService struct {
	habitaciones repository.HabitacionRepository
	estancias    repository.EstanciaRepository
	rdb          *redis.Client
}

// NewPanelService wires the occupancy board. rdb may be nil, in which case
// every read hits the database.
func NewPanelService(habitaciones repository.HabitacionRepository, estancias repository.EstanciaRepository, rdb *redis.Client) PanelService {
	return &panelService{habitaciones: habitaciones, estancias: estancias, rdb: rdb}
}

func (s *panelService) Panel(ctx context.Context) (*dto.PanelResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, panelCacheKey).Bytes(); err == nil {
			var resp dto.PanelResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	habitaciones, err := s.habitaciones.List(ctx, false)
	if err != nil {
		return nil, err
	}
	activas, err := s.estancias.ListActivas(ctx)
	if err != nil {
		return nil, err
	}

	porHabitacion := make(map[uuid.UUID]int, len(activas))
	for i := range activas {
		porHabitacion[activas[i].HabitacionID] = i
	}

	resp := &dto.PanelResponse{
		Habitaciones: make([]dto.PanelHabitacion, 0, len(habitaciones)),
		GeneradoEn:   time.Now().UTC().Format(time.RFC3339),
	}
	for i := range habitaciones {
		h := &habitaciones[i]
		fila := dto.PanelHabitacion{
			HabitacionID: h.ID.String(),
			Numero:       h.Numero,
		}
		if h.Tipo != nil {
			fila.Tipo = h.Tipo.Nombre
		}
		if idx, ok := porHabitacion[h.ID]; ok {
			e := &activas[idx]
			id := e.ID.String()
			entrada := e.HoraEntrada.Format(time.RFC3339)
			salida := e.HoraSalidaProgramada.Format(time.RFC3339)
			fila.Ocupada = true
			fila.EstanciaID = &id
			fila.HoraEntrada = &entrada
			fila.HoraSalidaProgramada = &salida
			resp.Ocupadas++
		} else {
			resp.Libres++
		}
		resp.Habitaciones = append(resp.Habitaciones, fila)
	}

	// Populate cache, best effort.
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), panelCacheKey, b, panelCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *panelService) Invalidar(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, panelCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache del panel")
	}
}
