package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/api"
	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/config"
	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/services"
	"github.com/westbourne-advisory/website/web"
)

const (
	defaultCacheTTLSeconds = 60
	defaultCMSTimeout      = 10
	defaultFromEmail       = "notifications@westbourneadvisory.com"
)

// newCMSClient builds the CMS client, adding the Redis response cache when
// REDIS_ADDRESS is set. The returned closer releases the Redis connection.
func newCMSClient(ctx context.Context, c map[string]string, metrics *cms.Metrics) (*cms.Client, io.Closer, error) {
	var getter config.ParameterGetter
	if config.GetString(c, "CMS_TOKEN_SSM_PARAM", "") != "" {
		var err error
		if getter, err = config.NewParameterGetter(ctx); err != nil {
			return nil, nil, err
		}
	}
	token, err := config.ResolveSecret(ctx, c, getter, "CMS_TOKEN", "CMS_TOKEN_SSM_PARAM")
	if err != nil {
		return nil, nil, err
	}

	opts := []cms.Option{cms.WithMetrics(metrics)}

	var closer io.Closer = nopCloser{}
	if addr := config.GetString(c, "REDIS_ADDRESS", ""); addr != "" {
		redisClient, err := cms.NewRedisClient(cms.RedisConfig{
			Address:  addr,
			Password: config.GetString(c, "REDIS_PASSWORD", ""),
			DB:       config.GetInt(c, "REDIS_DB", 0),
		})
		if err != nil {
			// pages still work uncached
			log.Warn().Err(err).Str("address", addr).Msg("CMS cache disabled")
		} else {
			ttl := config.GetSeconds(c, "CMS_CACHE_TTL_SECONDS", defaultCacheTTLSeconds)
			opts = append(opts, cms.WithCache(cms.NewRedisCache(redisClient), ttl))
			closer = redisClient
			log.Info().Str("address", addr).Dur("ttl", ttl).Msg("CMS cache enabled")
		}
	}

	client := cms.NewClient(cms.Config{
		BaseURL: config.GetString(c, "CMS_URL", cms.DefaultBaseURL),
		Token:   token,
		Timeout: config.GetSeconds(c, "CMS_TIMEOUT_SECONDS", defaultCMSTimeout),
	}, opts...)
	return client, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openDatabase connects when DATABASE_URL is set. Without it submissions are
// only sent as notifications.
func openDatabase(c map[string]string) (database.Database, error) {
	dsn := config.GetString(c, "DATABASE_URL", "")
	if dsn == "" {
		log.Warn().Msg("DATABASE_URL not set, submissions will not be stored")
		return database.New(nil), nil
	}

	db, err := database.Open(dsn, config.GetString(c, "DATABASE_REPLICA_URL", ""))
	if err != nil {
		return database.Database{}, err
	}
	return database.New(db), nil
}

// loadTemplates reads the embedded templates, or TEMPLATE_DIR with hot
// reload until ctx is done.
func loadTemplates(ctx context.Context, c map[string]string) (*web.Templates, error) {
	dir := config.GetString(c, "TEMPLATE_DIR", "")
	if dir == "" {
		return web.Load(web.TemplatesFS())
	}

	templates, err := web.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if err := web.Watch(ctx, dir, templates); err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).Msg("Serving templates from disk with hot reload")
	return templates, nil
}

func newDraftCodec(c map[string]string) (*intake.DraftCodec, error) {
	key := config.GetString(c, "INTAKE_SIGNING_KEY", "")
	if key == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate intake signing key: %w", err)
		}
		key = hex.EncodeToString(buf)
		log.Warn().Msg("INTAKE_SIGNING_KEY not set, journey drafts will not survive a restart")
	}

	siteURL := config.GetString(c, "SITE_URL", api.DefaultSiteURL)
	secure := config.GetBool(c, "COOKIE_SECURE", strings.HasPrefix(siteURL, "https://"))
	return intake.NewDraftCodec(key, secure), nil
}

// notifierConfig enables each notification channel whose settings are present.
func notifierConfig(ctx context.Context, c map[string]string) (services.NotifierConfig, error) {
	cfg := services.NotifierConfig{
		SiteName: config.GetString(c, "SITE_NAME", api.DefaultSiteName),
	}

	if apiKey := config.GetString(c, "RESEND_API_KEY", ""); apiKey != "" {
		recipients := config.GetList(c, "NOTIFY_EMAILS")
		if len(recipients) == 0 {
			log.Warn().Msg("RESEND_API_KEY set without NOTIFY_EMAILS, email notifications disabled")
		} else {
			cfg.Mailer = services.NewEmailSender(apiKey, config.GetString(c, "RESEND_FROM_EMAIL", defaultFromEmail))
			cfg.Recipients = recipients
		}
	}

	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	to := config.GetString(c, "NOTIFY_SMS_NUMBER", "")
	if sid != "" && token != "" && from != "" && to != "" {
		cfg.SMS = services.NewSMSSender(sid, token, from)
		cfg.SMSTo = to
	}

	if bucket := config.GetString(c, "INTAKE_ARCHIVE_BUCKET", ""); bucket != "" {
		archiver, err := services.NewArchiver(ctx, bucket)
		if err != nil {
			return services.NotifierConfig{}, err
		}
		cfg.Archiver = archiver
	}

	log.Info().
		Bool("email", cfg.Mailer != nil).
		Bool("sms", cfg.SMS != nil).
		Bool("archive", cfg.Archiver != nil).
		Msg("Notification channels")
	return cfg, nil
}

// newRegistry returns the registry served on /metrics, with the Go runtime
// and process collectors added.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
