package journalhandler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/domain/journal"
	"hradmin/internal/domain/users"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/transport/http/middleware"
)

type fakeArticles struct {
	created   []journal.ArticleInput
	patched   map[string]journal.ArticlePatch
	covers    []string
	published []string
	removed   []string
}

func (f *fakeArticles) readCover(cover *journal.Upload) error {
	if cover == nil {
		return nil
	}
	body, err := io.ReadAll(cover.Body)
	if err != nil {
		return err
	}
	f.covers = append(f.covers, cover.Filename+":"+string(body))
	return nil
}

func (f *fakeArticles) Create(_ context.Context, input journal.ArticleInput, cover *journal.Upload) error {
	f.created = append(f.created, input)
	return f.readCover(cover)
}

func (f *fakeArticles) Patch(_ context.Context, id string, patch journal.ArticlePatch, cover *journal.Upload) error {
	if id == "missing00000001" {
		return apperr.NotFound("article")
	}
	if f.patched == nil {
		f.patched = map[string]journal.ArticlePatch{}
	}
	f.patched[id] = patch
	return f.readCover(cover)
}

func (f *fakeArticles) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeArticles) Publish(_ context.Context, id string) error {
	if id == "missing00000001" {
		return apperr.NotFound("article")
	}
	f.published = append(f.published, id)
	return nil
}

func newRouter(articles *fakeArticles) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithUser(r.Context(), users.Principal{UserUUID: "usr000000000001"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	NewHandler(nil, articles, nil).RegisterRoutes(r)
	return r
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, cover string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if cover != "" {
		part, err := mw.CreateFormFile("cover", "cover.png")
		require.NoError(t, err)
		_, err = part.Write([]byte(cover))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateArticleWithCover(t *testing.T) {
	articles := &fakeArticles{}
	rec := serve(newRouter(articles), multipartRequest(t, http.MethodPost, "/journal/article", map[string]string{
		"uuid":         "art000000000001",
		"journal_uuid": "jnl000000000001",
		"title":        "Quarterly notes",
		"abstract":     "short",
	}, "image-bytes"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, articles.created, 1)
	got := articles.created[0]
	assert.Equal(t, "Quarterly notes", got.Title)
	require.NotNil(t, got.Abstract)
	assert.Equal(t, "short", *got.Abstract)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, "usr000000000001", *got.CreatedBy)
	assert.Nil(t, got.Cover)
	assert.Equal(t, []string{"cover.png:image-bytes"}, articles.covers)
}

func TestCreateArticleValidation(t *testing.T) {
	articles := &fakeArticles{}
	rec := serve(newRouter(articles), multipartRequest(t, http.MethodPost, "/journal/article", map[string]string{
		"uuid": "short",
	}, ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "journal_uuid")
	assert.Empty(t, articles.created)
}

func TestCreateArticleFromURLEncodedForm(t *testing.T) {
	articles := &fakeArticles{}
	req := httptest.NewRequest(http.MethodPost, "/journal/article",
		strings.NewReader("uuid=art000000000001&journal_uuid=jnl000000000001&title=Plain"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(newRouter(articles), req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, articles.covers)
}

func TestPatchArticle(t *testing.T) {
	articles := &fakeArticles{}
	h := newRouter(articles)

	rec := serve(h, multipartRequest(t, http.MethodPatch, "/journal/article/art000000000001",
		map[string]string{"title": "Renamed"}, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	patch := articles.patched["art000000000001"]
	require.NotNil(t, patch.Title)
	assert.Equal(t, "Renamed", *patch.Title)
	assert.Nil(t, patch.JournalUUID)

	rec = serve(h, multipartRequest(t, http.MethodPatch, "/journal/article/missing00000001",
		map[string]string{"title": "x"}, ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishAndDeleteArticle(t *testing.T) {
	articles := &fakeArticles{}
	h := newRouter(articles)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/journal/article/art000000000001/publish", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"art000000000001"}, articles.published)

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/journal/article/missing00000001/publish", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/journal/article/art000000000001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"art000000000001"}, articles.removed)
}
