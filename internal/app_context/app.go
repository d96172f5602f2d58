package appcontext

import (
	"github.com/metricasboss/summit-cert-api/internal/certificate"
	"github.com/metricasboss/summit-cert-api/internal/config"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Certificate drives the render -> pdf -> upload -> notify pipeline.
	Certificate *certificate.Service
}
