package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/web"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestNotifierConfig(t *testing.T) {
	cfg, err := notifierConfig(context.Background(), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "Westbourne Advisory", cfg.SiteName)
	assert.Nil(t, cfg.Mailer)
	assert.Nil(t, cfg.SMS)
	assert.Nil(t, cfg.Archiver)

	cfg, err = notifierConfig(context.Background(), map[string]string{
		"SITE_NAME":          "Westbourne",
		"RESEND_API_KEY":     "re_test",
		"NOTIFY_EMAILS":      "a@example.com, b@example.com",
		"TWILIO_ACCOUNT_SID": "AC123",
		"TWILIO_AUTH_TOKEN":  "token",
		"TWILIO_FROM_NUMBER": "+441234567890",
		"NOTIFY_SMS_NUMBER":  "+447700900123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Westbourne", cfg.SiteName)
	assert.NotNil(t, cfg.Mailer)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients)
	assert.NotNil(t, cfg.SMS)
	assert.Equal(t, "+447700900123", cfg.SMSTo)

	// email needs somewhere to go
	cfg, err = notifierConfig(context.Background(), map[string]string{"RESEND_API_KEY": "re_test"})
	require.NoError(t, err)
	assert.Nil(t, cfg.Mailer)
}

func TestNewDraftCodec(t *testing.T) {
	codec, err := newDraftCodec(map[string]string{"INTAKE_SIGNING_KEY": "k", "SITE_URL": "http://localhost:8080"})
	require.NoError(t, err)
	cookie, err := codec.Cookie(intake.NewDraft())
	require.NoError(t, err)
	assert.False(t, cookie.Secure)

	codec, err = newDraftCodec(map[string]string{})
	require.NoError(t, err)
	cookie, err = codec.Cookie(intake.NewDraft())
	require.NoError(t, err)
	assert.True(t, cookie.Secure)

	d, err := codec.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Step)

	codec, err = newDraftCodec(map[string]string{"COOKIE_SECURE": "false"})
	require.NoError(t, err)
	cookie, err = codec.Cookie(intake.NewDraft())
	require.NoError(t, err)
	assert.False(t, cookie.Secure)
}

func TestOpenDatabaseDisabled(t *testing.T) {
	db, err := openDatabase(map[string]string{})
	require.NoError(t, err)
	assert.False(t, db.Enabled())
}

func TestLoadTemplatesEmbedded(t *testing.T) {
	templates, err := loadTemplates(context.Background(), map[string]string{})
	require.NoError(t, err)
	assert.True(t, templates.Has(web.PageHome))
}

func TestSitemapCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"slug":"parental-orders","publishedAt":"2024-01-15"}],"meta":{}}`))
	}))
	defer server.Close()

	appConfig = map[string]string{"CMS_URL": server.URL}
	t.Cleanup(func() { appConfig = nil })

	var out bytes.Buffer
	cmd := newSitemapCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--site-url", "https://example.com"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "<loc>https://example.com/blog/parental-orders</loc>")
	assert.Contains(t, out.String(), "<lastmod>2024-01-15T00:00:00Z</lastmod>")
}

// occupiedPort holds a port on every interface for the duration of the test.
func occupiedPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "0.0.0.0:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
}

func TestServeFailsWhenPortInUse(t *testing.T) {
	err := runServe(context.Background(), map[string]string{"PORT": occupiedPort(t)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInterrupted)
	assert.Contains(t, err.Error(), "server stopped")
}

func TestRootCommandServes(t *testing.T) {
	t.Setenv("PORT", occupiedPort(t))
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() {
		appConfig = nil
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{})
	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server stopped")
}
