package config

import (
	"strings"
	"time"

	"github.com/metricasboss/summit-cert-api/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	Storage     StorageConfig
	Mail        MailConfig
	Renderer    RendererConfig
	RateLimiter RateLimiterConfig
}

type StorageConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	USE_SSL    bool
	// Bucket is the fixed target bucket, Prefix the fixed key prefix inside it.
	// Every certificate is stored at "<Prefix>/<id>.pdf".
	Bucket string
	Prefix string
}

type MailConfig struct {
	// Provider selects the transactional provider, "resend" or "sendgrid".
	Provider   string
	FROM_EMAIL string
	RESEND     ResendConfig
	SEND_GRID  SendGridConfig
}

type ResendConfig struct {
	API_KEY string
}

type SendGridConfig struct {
	API_KEY string
}

type RendererConfig struct {
	// ChromePath optionally overrides the browser executable used for
	// HTML to PDF conversion. Empty means resolve from PATH.
	ChromePath   string
	TemplatePath string
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	rateLimitTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimitTimeFrame = 60 * time.Second
	}

	return Config{
		Port: env.GetString("PORT", "3000"),
		ENV:  env.GetString("ENV", "development"),
		Storage: StorageConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", true),
			Bucket:     env.GetString("STORAGE_BUCKET", "download.metricasboss.com.br"),
			Prefix:     env.GetString("STORAGE_PREFIX", "summit24"),
		},
		Mail: MailConfig{
			Provider:   env.GetString("MAIL_PROVIDER", "resend"),
			FROM_EMAIL: env.GetString("MAIL_FROM_EMAIL", "prime@metricasboss.com.br"),
			RESEND: ResendConfig{
				API_KEY: env.GetString("RESEND_API_KEY", ""),
			},
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("SENDGRID_API_KEY", ""),
			},
		},
		Renderer: RendererConfig{
			ChromePath:   env.GetString("CHROME_PATH", ""),
			TemplatePath: env.GetString("CERT_TEMPLATE_PATH", "templates/certificate.html"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimitTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
	}
}
