package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photosphere/connect-admin-console/internal/api/middleware"
	"github.com/photosphere/connect-admin-console/internal/config"
	"github.com/photosphere/connect-admin-console/internal/notify"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
	"github.com/photosphere/connect-admin-console/internal/usecase/management"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	engine     *gin.Engine
	server     *http.Server
	cfg        *config.Config
	console    *console.Service
	management *management.Service
	warnLog    notify.Sink
	logger     *zap.Logger
}

func NewRouter(
	cfg *config.Config,
	consoleSvc *console.Service,
	managementSvc *management.Service,
	logger *zap.Logger,
) *Router {
	// Disable GIN default logger
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))

	r.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html"),
	))

	api := &Router{
		engine:     r,
		cfg:        cfg,
		console:    consoleSvc,
		management: managementSvc,
		warnLog:    notify.NewLog(logger),
		logger:     logger,
	}

	api.RegisterRoutes()
	return api
}

func (r *Router) RegisterRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": r.cfg.AppVersion})
	})

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// HTML console
	r.engine.GET("/", r.ShowConsole)
	r.engine.POST("/", r.UpdateConsoleSelection)
	forms := r.engine.Group("/forms")
	{
		forms.POST("/account", r.SubmitAccountForm)
		forms.POST("/routing", r.SubmitRoutingProfileForm)
		forms.POST("/quickconnect", r.SubmitQuickConnectForm)
	}

	api := r.engine.Group("/api")
	{
		api.GET("/regions", r.ListRegions)
		api.GET("/selection", r.GetSelection)
		api.PUT("/selection", r.UpdateSelection)
		api.GET("/instances", r.ListInstances)

		api.GET("/accounts", r.ListAccounts)
		api.POST("/accounts", r.CreateAccount)
		api.GET("/routing-profiles", r.ListRoutingProfiles)
		api.POST("/routing-profiles", r.CreateRoutingProfile)
		api.GET("/quick-connects", r.ListQuickConnects)
		api.POST("/quick-connects", r.CreateQuickConnect)
	}

	r.RegisterFallback()
}

// Handler exposes the engine, mainly for tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) Run() error {
	r.server = &http.Server{
		Addr:         ":" + r.cfg.Port,
		Handler:      r.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return r.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

// requestSink collects warnings for the response and mirrors them to the log.
func (r *Router) requestSink() (*notify.Collector, notify.Sink) {
	collector := notify.NewCollector()
	return collector, notify.Multi(collector, r.warnLog)
}
