package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westbourne-advisory/website/models"
	"github.com/westbourne-advisory/website/videobg"
)

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestGetBlogPostsAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/blog-posts?page=2&pageSize=5&category=Timing")
	require.Equal(t, http.StatusOK, rec.Code)

	var res BlogPostsResponse
	decodeJSON(t, rec, &res)
	require.Len(t, res.Posts, 2)
	assert.Equal(t, "parental-orders", res.Posts[0].Slug)
	assert.Equal(t, "/uploads/po.jpg", res.Posts[0].FeaturedImage.URL)
	assert.Equal(t, models.Pagination{Page: 2, PageSize: 9, PageCount: 3, Total: 20}, res.Pagination)

	assert.True(t, env.cms.sawQuery(map[string]string{
		"pagination[page]":       "2",
		"pagination[pageSize]":   "5",
		"filters[category][$eq]": "Timing",
	}))
}

func TestGetBlogPostsAPIPageSizeLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/blog-posts?pageSize=500")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res ErrorResponse
	decodeJSON(t, rec, &res)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "pageSize", res.Field)
}

func TestGetBlogPostAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/blog-posts/parental-orders")
	require.Equal(t, http.StatusOK, rec.Code)
	var post models.BlogPost
	decodeJSON(t, rec, &post)
	assert.Equal(t, "Understanding Parental Orders", post.Title)
	assert.Equal(t, "Parental Orders Explained", post.SEOTitle)

	rec = env.get(t, "/api/blog-posts/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentAPICMSDown(t *testing.T) {
	env := newTestEnv(t)
	env.cms.setFail(true)

	for _, path := range []string{
		"/api/blog-posts",
		"/api/blog-posts/parental-orders",
		"/api/blog-categories",
		"/api/testimonials",
		"/api/faqs",
	} {
		t.Run(path, func(t *testing.T) {
			rec := env.get(t, path)
			require.Equal(t, http.StatusBadGateway, rec.Code)

			var res ErrorResponse
			decodeJSON(t, rec, &res)
			assert.Equal(t, "error", res.Status)
			assert.True(t, strings.HasPrefix(res.Details, "Failed to "), res.Details)
		})
	}
}

func TestGetBlogCategoriesAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/blog-categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var res CategoriesResponse
	decodeJSON(t, rec, &res)
	assert.Equal(t, []string{"Legal Process", "Timing"}, res.Categories)
}

func TestGetTestimonialsAndFAQsAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/testimonials?featured=true")
	require.Equal(t, http.StatusOK, rec.Code)
	var testimonials []models.Testimonial
	decodeJSON(t, rec, &testimonials)
	require.Len(t, testimonials, 1)
	assert.Equal(t, "Priya & Tom", testimonials[0].Name)
	assert.True(t, env.cms.sawQuery(map[string]string{"filters[featured][$eq]": "true"}))

	rec = env.get(t, "/api/faqs?category=Timing")
	require.Equal(t, http.StatusOK, rec.Code)
	var faqs []models.FAQ
	decodeJSON(t, rec, &faqs)
	require.Len(t, faqs, 2)
	assert.Equal(t, "First question?", faqs[0].Question)
	assert.True(t, env.cms.sawQuery(map[string]string{"filters[category][$eq]": "Timing"}))
}

func TestGetVideoSectionsAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/video-sections")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		InitialVideo    string            `json:"initialVideo"`
		MinVisibleRatio float64           `json:"minVisibleRatio"`
		DelayMs         int64             `json:"delayMs"`
		Sections        []videobg.Section `json:"sections"`
	}
	decodeJSON(t, rec, &res)
	assert.Equal(t, "/video_1.mp4", res.InitialVideo)
	assert.Equal(t, 0.4, res.MinVisibleRatio)
	assert.Equal(t, int64(200), res.DelayMs)
	assert.Equal(t, videobg.DefaultSections(), res.Sections)
}

func adminRequest(method, target, password string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if password != "" {
		req.Header.Set("Authorization", "Bearer "+password)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestAdminRequiresPassword(t *testing.T) {
	env := newTestEnv(t)

	for _, password := range []string{"", "wrong"} {
		rec := env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications", password, ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contact-messages", nil)
	req.Header.Set("Authorization", "Basic "+adminPassword)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, req).Code)
}

func TestAdminListIntakeApplications(t *testing.T) {
	env := newTestEnv(t, withMockDB())

	id := uuid.New()
	created := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "answers", "status", "created_at"}).
		AddRow(id.String(), "Alex Morgan", "alex@example.com", []byte(`{"country":"Ireland"}`), "new", created)
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "intake_applications" ORDER BY created_at DESC LIMIT`)).
		WillReturnRows(rows)

	rec := env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications?limit=10", adminPassword, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var res IntakeApplicationsResponse
	decodeJSON(t, rec, &res)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Applications, 1)
	assert.Equal(t, id, res.Applications[0].ID)
	assert.Equal(t, "new", res.Applications[0].Status)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestAdminGetIntakeApplication(t *testing.T) {
	env := newTestEnv(t, withMockDB())
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "answers", "status", "created_at"}).
		AddRow(id.String(), "Alex Morgan", "alex@example.com", []byte(`{"country":"Ireland"}`), "contacted", time.Now())
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "intake_applications" WHERE id = $1`)).
		WillReturnRows(rows)

	rec := env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications/"+id.String(), adminPassword, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var app models.IntakeApplication
	decodeJSON(t, rec, &app)
	assert.Equal(t, id, app.ID)
	assert.Equal(t, "Alex Morgan", app.FullName)
	assert.Equal(t, models.IntakeStatusContacted, app.Status)

	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "intake_applications" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	rec = env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications/"+uuid.New().String(), adminPassword, ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications/nope", adminPassword, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications/"+id.String(), "", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestAdminUpdateIntakeStatus(t *testing.T) {
	env := newTestEnv(t, withMockDB())
	id := uuid.New()

	env.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "intake_applications" SET "status"=$1 WHERE id = $2`)).
		WithArgs(models.IntakeStatusContacted, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	target := "/api/admin/intake-applications/" + id.String() + "/status"
	rec := env.do(t, adminRequest(http.MethodPut, target, adminPassword, `{"status":"contacted"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+id.String()+`","status":"contacted"}`, rec.Body.String())
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestAdminUpdateIntakeStatusRejects(t *testing.T) {
	env := newTestEnv(t, withMockDB())
	id := uuid.New().String()

	rec := env.do(t, adminRequest(http.MethodPut, "/api/admin/intake-applications/nope/status", adminPassword, `{"status":"contacted"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, adminRequest(http.MethodPut, "/api/admin/intake-applications/"+id+"/status", adminPassword, `{"status":"archived"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, adminRequest(http.MethodPut, "/api/admin/intake-applications/"+id+"/status", adminPassword, `{`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "intake_applications"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rec = env.do(t, adminRequest(http.MethodPut, "/api/admin/intake-applications/"+id+"/status", adminPassword, `{"status":"new"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestAdminListContactMessages(t *testing.T) {
	env := newTestEnv(t, withMockDB())

	rows := sqlmock.NewRows([]string{"id", "name", "email", "message", "created_at"}).
		AddRow(uuid.New().String(), "Jo Bloggs", "jo@example.com", "Hello", time.Now())
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contact_messages" ORDER BY created_at DESC LIMIT`)).
		WillReturnRows(rows)

	rec := env.do(t, adminRequest(http.MethodGet, "/api/admin/contact-messages", adminPassword, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var res ContactMessagesResponse
	decodeJSON(t, rec, &res)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "Jo Bloggs", res.Messages[0].Name)
}

func TestAdminDatabaseErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, adminRequest(http.MethodGet, "/api/admin/intake-applications", adminPassword, ""))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	env = newTestEnv(t, withMockDB())
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contact_messages"`)).
		WillReturnError(errors.New("syntax error at or near"))
	rec = env.do(t, adminRequest(http.MethodGet, "/api/admin/contact-messages", adminPassword, ""))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var res ErrorResponse
	decodeJSON(t, rec, &res)
	assert.Equal(t, "error", res.Status)
}
