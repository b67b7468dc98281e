package router

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/config"
	"github.com/Juanarielok/prototipoR1-backend/internal/handler"
	"github.com/Juanarielok/prototipoR1-backend/internal/middleware"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
	"github.com/Juanarielok/prototipoR1-backend/internal/service"
	"github.com/Juanarielok/prototipoR1-backend/internal/worker"
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	asignacionRepo := repository.NewAsignacionRepository(db)
	jornadaRepo := repository.NewJornadaRepository(db)
	remitoRepo := repository.NewRemitoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	asignacionSvc := service.NewAsignacionService(asignacionRepo, usuarioRepo)
	jornadaSvc := service.NewJornadaService(jornadaRepo, usuarioRepo)
	remitoSvc := service.NewRemitoService(remitoRepo, usuarioRepo, asignacionRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	asignacionesH := handler.NewAsignacionesHandler(asignacionSvc)
	jornadasH := handler.NewJornadasHandler(jornadaSvc)
	remitosH := handler.NewRemitosHandler(remitoSvc)

	admin := string(model.RolAdmin)
	chofer := string(model.RolChofer)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	r.GET("/auth/me", jwtMW, authH.Me)

	users := r.Group("/users", jwtMW)
	{
		users.POST("", middleware.RequireRol(admin), usuariosH.Crear)
		users.GET("/search", usuariosH.Buscar)
		users.GET("/role/:role", usuariosH.ListarPorRol)
		users.PUT("/:id", middleware.RequireRol(admin), usuariosH.Actualizar)
		users.PUT("/:id/reset-password", middleware.RequireRol(admin), usuariosH.ResetPassword)
		users.PATCH("/:id/reset-status", middleware.RequireRol(admin), usuariosH.ResetStatus)
	}

	assignments := r.Group("/assignments", jwtMW)
	{
		assignments.POST("", middleware.RequireRol(admin), asignacionesH.Asignar)
		assignments.GET("/me", middleware.RequireRol(chofer), asignacionesH.MisAsignaciones)
		assignments.GET("/me/count", middleware.RequireRol(chofer), asignacionesH.Contar)
	}

	jornadas := r.Group("/jornadas", jwtMW)
	{
		jornadas.POST("/checkin", middleware.RequireRol(chofer), jornadasH.CheckIn)
		jornadas.POST("/checkout", middleware.RequireRol(chofer), jornadasH.CheckOut)
		jornadas.GET("/me", middleware.RequireRol(chofer), jornadasH.MiJornada)
		jornadas.GET("/me/historial", middleware.RequireRol(chofer), jornadasH.MiHistorial)
		jornadas.GET("/activas", middleware.RequireRol(admin), jornadasH.Activas)
		jornadas.GET("/chofer/:id", middleware.RequireRol(admin), jornadasH.HistorialChofer)
	}

	remitos := r.Group("/remitos", jwtMW)
	{
		remitos.POST("", middleware.RequireRol(chofer), remitosH.Crear)
		remitos.GET("/me", middleware.RequireRol(chofer), remitosH.MisRemitos)
		remitos.GET("/cliente/:id", remitosH.PorCliente)
		remitos.GET("/:id", remitosH.Obtener)
		remitos.GET("/:id/pdf", remitosH.PDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
