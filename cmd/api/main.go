package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	appcontext "github.com/metricasboss/summit-cert-api/internal/app_context"
	"github.com/metricasboss/summit-cert-api/internal/certificate"
	"github.com/metricasboss/summit-cert-api/internal/config"
	"github.com/metricasboss/summit-cert-api/internal/controller"
	"github.com/metricasboss/summit-cert-api/internal/env"
	"github.com/metricasboss/summit-cert-api/internal/mailer"
	"github.com/metricasboss/summit-cert-api/internal/middleware"
	"github.com/metricasboss/summit-cert-api/internal/pdf"
	ratelimiter "github.com/metricasboss/summit-cert-api/internal/rate_limiter"
	"github.com/metricasboss/summit-cert-api/internal/route"
	"github.com/metricasboss/summit-cert-api/internal/storage"
	"github.com/metricasboss/summit-cert-api/internal/template"
	"github.com/metricasboss/summit-cert-api/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	s3, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			logger.Panic(err)
		}
	}

	var mail mailer.Client
	switch cfg.Mail.Provider {
	case "sendgrid":
		mail = mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, logger)
	default:
		mail = mailer.NewResend(cfg.Mail.RESEND.API_KEY, cfg.Mail.FROM_EMAIL, logger)
	}

	service := certificate.NewService(
		template.NewRenderer(cfg.Renderer.TemplatePath),
		pdf.NewChromeGenerator(cfg.Renderer.ChromePath),
		storage.NewMinioUploader(s3, cfg.Storage),
		mail,
		logger,
	)

	app := appcontext.Application{
		Config:      &cfg,
		Logger:      logger,
		Certificate: service,
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestLogger)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)
	route.Certificate(r, _controller.Certificate)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Panicf("Error running server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
