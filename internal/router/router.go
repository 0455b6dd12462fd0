package router

import (
	"time"

	"hostalpos/internal/config"
	"hostalpos/internal/handler"
	"hostalpos/internal/middleware"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"
	"hostalpos/internal/service"
	"hostalpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	estanciaRepo := repository.NewEstanciaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	habitacionRepo := repository.NewHabitacionRepository(db)
	tarifaRepo := repository.NewTarifaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	panelSvc := service.NewPanelService(habitacionRepo, estanciaRepo, rdb)
	turnoSvc := service.NewTurnoService(turnoRepo, cajaRepo, dispatcher)
	estanciaSvc := service.NewEstanciaService(estanciaRepo, habitacionRepo, tarifaRepo, turnoRepo, cajaRepo, panelSvc)
	ventaSvc := service.NewVentaService(productoRepo, turnoRepo, cajaRepo, estanciaRepo)
	reporteSvc := service.NewReporteService(turnoRepo, cajaRepo)
	habitacionSvc := service.NewHabitacionService(habitacionRepo, estanciaRepo)
	tarifaSvc := service.NewTarifaService(tarifaRepo, habitacionRepo)
	productoSvc := service.NewProductoService(productoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	estanciasH := handler.NewEstanciasHandler(estanciaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, cfg)
	habitacionesH := handler.NewHabitacionesHandler(habitacionSvc)
	tarifasH := handler.NewTarifasHandler(tarifaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	panelH := handler.NewPanelHandler(panelSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operadores := middleware.RequireRole(model.RolAdmin, model.RolEmpleado, model.RolInvitado)
	conReportes := middleware.RequireRole(model.RolAdmin, model.RolEmpleado)
	soloAdmin := middleware.RequireRole(model.RolAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		turnos := v1.Group("/turnos", operadores)
		{
			turnos.POST("/iniciar", turnosH.Iniciar)
			turnos.POST("/cerrar", turnosH.Cerrar)
			turnos.GET("/activo", turnosH.Activo)
			turnos.GET("", turnosH.Listar)
			turnos.GET("/:id/movimientos", turnosH.Movimientos)
		}

		estancias := v1.Group("/estancias", operadores)
		{
			estancias.POST("", estanciasH.Abrir)
			estancias.GET("/activas", estanciasH.Activas)
			estancias.POST("/:id/horas-extra", estanciasH.HorasExtra)
			estancias.POST("/:id/cerrar", estanciasH.Cerrar)
		}

		v1.POST("/ventas", operadores, ventasH.Vender)
		v1.GET("/panel", operadores, panelH.Panel)

		reportes := v1.Group("/reportes", conReportes)
		{
			reportes.GET("/turnos", reportesH.Turnos)
			reportes.GET("/turnos/export", reportesH.TurnosCSV)
			reportes.GET("/turnos/:id/pdf", reportesH.TurnoPDF)
			reportes.GET("/empleados", reportesH.Empleados)
			reportes.GET("/resumen-diario", reportesH.ResumenDiario)
		}

		// Catalog reads are open to every operator; writes are admin only
		v1.GET("/habitaciones", operadores, habitacionesH.Listar)
		v1.GET("/habitaciones/tipos", operadores, habitacionesH.ListarTipos)
		v1.GET("/tarifas", operadores, tarifasH.Listar)
		v1.GET("/productos", operadores, productosH.Listar)

		habitaciones := v1.Group("/habitaciones", soloAdmin)
		{
			habitaciones.POST("", habitacionesH.Crear)
			habitaciones.POST("/tipos", habitacionesH.CrearTipo)
			habitaciones.DELETE("/tipos/:id", habitacionesH.DesactivarTipo)
			habitaciones.DELETE("/:id", habitacionesH.Desactivar)
			habitaciones.PATCH("/:id/reactivar", habitacionesH.Reactivar)
		}

		tarifas := v1.Group("/tarifas", soloAdmin)
		{
			tarifas.POST("", tarifasH.Crear)
			tarifas.DELETE("/:id", tarifasH.Desactivar)
			tarifas.PATCH("/:id/reactivar", tarifasH.Reactivar)
		}

		productos := v1.Group("/productos", soloAdmin)
		{
			productos.POST("", productosH.Crear)
			productos.PATCH("/:id/stock", productosH.AjustarStock)
			productos.DELETE("/:id", productosH.Desactivar)
			productos.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
