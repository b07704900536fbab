package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/models"
	"github.com/westbourne-advisory/website/web"
)

const adminPassword = "s3cret-admin"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const postsFixture = `{
  "data": [
    {"id": 7, "attributes": {
      "title": "Understanding Parental Orders",
      "slug": "parental-orders",
      "excerpt": "A guide to parental orders",
      "content": [{"type":"paragraph","children":[{"type":"text","text":"Hello"}]}],
      "author": "Westbourne Advisory",
      "category": "Legal Process",
      "tags": "surrogacy, parental orders",
      "publishedAt": "2024-01-15T09:00:00.000Z",
      "updatedAt": "2024-02-01T09:00:00.000Z",
      "featuredImage": {"data": {"attributes": {"url": "/uploads/po.jpg", "alternativeText": "Court"}}}
    }},
    {"id": 8, "attributes": {
      "title": "Timeline",
      "slug": "timeline",
      "category": "Timing",
      "publishedAt": "2024-01-10T09:00:00.000Z",
      "featuredImage": {"data": null}
    }}
  ],
  "meta": {"pagination": {"page": 2, "pageSize": 9, "pageCount": 3, "total": 20}}
}`

const singlePostFixture = `{"data": [{"id": 7, "attributes": {
  "title": "Understanding Parental Orders",
  "slug": "parental-orders",
  "excerpt": "A guide to parental orders",
  "seoTitle": "Parental Orders Explained",
  "content": [{"type":"paragraph","children":[{"type":"text","text":"Hello"}]}],
  "author": "Westbourne Advisory",
  "category": "Legal Process",
  "tags": "surrogacy, parental orders",
  "publishedAt": "2024-01-15T09:00:00.000Z"
}}], "meta": {}}`

const testimonialsFixture = `{"data": [
  {"id": 1, "name": "Priya & Tom", "role": "Intended Parents, Leeds", "quote": "Brilliant support.", "rating": 4, "featured": true,
   "avatar": {"url": "/uploads/pt.jpg", "alternativeText": ""}}
], "meta": {}}`

const faqsFixture = `{"data": [
  {"id": 1, "question": "Second question?", "answer": "Second answer.", "category": "Timing", "order": 2},
  {"id": 2, "question": "First question?", "answer": "First answer.", "category": "Legal Process", "order": 1}
], "meta": {}}`

const termsFixture = `{"data": [{"id": 3, "title": "Terms of Engagement", "slug": "terms-and-conditions", "lastUpdated": "2025-03-01",
  "content": [
    {"type":"heading","level":2,"children":[{"type":"text","text":"Scope"}]},
    {"type":"paragraph","children":[{"type":"text","text":"These terms apply."}]}
  ]}], "meta": {}}`

const emptyList = `{"data": [], "meta": {}}`

// fakeCMS answers the content API from fixtures and records the queries it saw.
type fakeCMS struct {
	mu      sync.Mutex
	fail    bool
	queries []url.Values
}

func (f *fakeCMS) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	fail := f.fail
	f.mu.Unlock()

	if fail {
		http.Error(w, `{"error":"unavailable"}`, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()
	switch r.URL.Path {
	case "/api/blog-posts":
		switch slug := q.Get("filters[slug][$eq]"); slug {
		case "":
			_, _ = w.Write([]byte(postsFixture))
		case "parental-orders":
			_, _ = w.Write([]byte(singlePostFixture))
		default:
			_, _ = w.Write([]byte(emptyList))
		}
	case "/api/testimonials":
		_, _ = w.Write([]byte(testimonialsFixture))
	case "/api/faqs":
		_, _ = w.Write([]byte(faqsFixture))
	case "/api/legal-pages":
		if q.Get("filters[slug][$eq]") == cms.TermsAndConditionsSlug {
			_, _ = w.Write([]byte(termsFixture))
			return
		}
		_, _ = w.Write([]byte(emptyList))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeCMS) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

// sawQuery reports whether any request carried all of want.
func (f *fakeCMS) sawQuery(want map[string]string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.queries {
		match := true
		for k, v := range want {
			if q.Get(k) != v {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

type fakeNotifier struct {
	mu       sync.Mutex
	intakes  []*models.IntakeApplication
	contacts []*models.ContactMessage
}

func (n *fakeNotifier) NotifyIntake(_ context.Context, app *models.IntakeApplication) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.intakes = append(n.intakes, app)
	return nil
}

func (n *fakeNotifier) NotifyContact(_ context.Context, msg *models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, msg)
	return nil
}

type testEnv struct {
	router   *chi.Mux
	cms      *fakeCMS
	cmsURL   string
	notifier *fakeNotifier
	mock     sqlmock.Sqlmock
}

type envOption func(*envConfig)

type envConfig struct {
	withDB bool
}

func withMockDB() envOption {
	return func(c *envConfig) { c.withDB = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var ec envConfig
	for _, opt := range opts {
		opt(&ec)
	}

	fake := &fakeCMS{}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	metrics := cms.NewMetrics(reg)
	client := cms.NewClient(cms.Config{BaseURL: server.URL, Token: "cms-token"}, cms.WithMetrics(metrics))

	templates, err := web.Load(web.TemplatesFS())
	require.NoError(t, err)

	env := &testEnv{cms: fake, cmsURL: server.URL, notifier: &fakeNotifier{}}

	db := database.New(nil)
	if ec.withDB {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		db = database.New(gdb)
		env.mock = mock
	}

	cfg := map[string]string{
		"SITE_URL":         "https://westbourneadvisory.com",
		"ADMIN_PASSWORD":   adminPassword,
		"ACCEPTED_ORIGINS": "https://westbourneadvisory.com, https://admin.westbourneadvisory.com",
		"LOG_FORMAT":       "json",
	}

	env.router = newRouter(Deps{
		Content:   cms.NewContent(client, metrics),
		Database:  db,
		Templates: templates,
		Drafts:    intake.NewDraftCodec("test-signing-key", false),
		Notifier:  env.notifier,
		Registry:  reg,
		Now:       func() time.Time { return fixedNow },
	}, withConfig(cfg), withStartupTime(fixedNow.Add(-time.Hour)))

	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(target string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
