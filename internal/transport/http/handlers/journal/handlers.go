package journalhandler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form"

	"hradmin/internal/domain/journal"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

// multipartMemory is how much of a form is held in memory before parts spill to disk.
const multipartMemory = 8 << 20

// Articles is the write side of articles; cover files are handled by the implementation.
type Articles interface {
	Create(ctx context.Context, input journal.ArticleInput, cover *journal.Upload) error
	Patch(ctx context.Context, id string, patch journal.ArticlePatch, cover *journal.Upload) error
	Remove(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) error
}

// CoverFiles resolves a stored cover name to a path on disk.
type CoverFiles interface {
	Path(name string) (string, error)
}

type Handler struct {
	Articles Articles
	Covers   CoverFiles
	journals *crudhandler.Handler[journal.Journal, journal.JournalInput, journal.JournalPatch]
	reads    *crudhandler.Handler[journal.Article, journal.ArticleInput, journal.ArticlePatch]
	decoder  *form.Decoder
}

func NewHandler(pool db.DB, articles Articles, covers CoverFiles) *Handler {
	return &Handler{
		Articles: articles,
		Covers:   covers,
		journals: crudhandler.FromRepo(journal.NewJournals(pool), "journal"),
		reads: crudhandler.FromRepo(journal.NewArticles(pool), "article",
			crudhandler.Parent{Segment: "journal", Param: "journal_uuid", Filter: "journal_uuid"}),
		decoder: form.NewDecoder(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.journals.RegisterRoutes(r, "/journal/journal")
	r.Route("/journal/article", func(r chi.Router) {
		h.reads.RegisterReadRoutes(r)
		r.Post("/", h.handleCreate)
		r.Patch("/{uuid}", h.handlePatch)
		r.Delete("/{uuid}", h.handleDelete)
		r.Post("/{uuid}/publish", h.handlePublish)
		r.Get("/{uuid}/cover", h.handleCover)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var input journal.ArticleInput
	cover, err := h.decodeForm(r, &input)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if cover != nil {
		defer cover.close()
	}
	input.Cover = nil
	if err := shared.Struct(input); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		input.DefaultCreatedBy(user.UserUUID)
	}
	if err := h.Articles.Create(r.Context(), input, cover.upload()); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, "article created")
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var patch journal.ArticlePatch
	cover, err := h.decodeForm(r, &patch)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if cover != nil {
		defer cover.close()
	}
	patch.Cover = nil
	if err := shared.Struct(patch); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if err := h.Articles.Patch(r.Context(), chi.URLParam(r, "uuid"), patch, cover.upload()); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Updated(w, "article updated")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Articles.Remove(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Deleted(w, "article deleted")
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	if err := h.Articles.Publish(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Updated(w, "article published")
}

func (h *Handler) handleCover(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	article, err := h.reads.Resource.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if article.Cover == nil {
		api.FailError(w, apperr.NotFound("article cover"), requestID)
		return
	}
	path, err := h.Covers.Path(*article.Cover)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if _, err := os.Stat(path); err != nil {
		api.FailError(w, apperr.NotFound("article cover"), requestID)
		return
	}
	http.ServeFile(w, r, path)
}

type coverPart struct {
	filename string
	file     multipart.File
}

func (c *coverPart) upload() *journal.Upload {
	if c == nil {
		return nil
	}
	return &journal.Upload{Filename: c.filename, Body: c.file}
}

func (c *coverPart) close() { _ = c.file.Close() }

// decodeForm fills dst from a multipart or urlencoded body and returns the optional cover part.
func (h *Handler) decodeForm(r *http.Request, dst any) (*coverPart, error) {
	isMultipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
	var err error
	if isMultipart {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, api.IssueList{{Field: "body", Reason: "is too large"}}
		}
		return nil, api.IssueList{{Field: "body", Reason: "must be a valid form"}}
	}
	if err := h.decoder.Decode(dst, r.PostForm); err != nil {
		return nil, formIssues(err)
	}
	if !isMultipart {
		return nil, nil
	}
	file, header, err := r.FormFile("cover")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, api.IssueList{{Field: "cover", Reason: "could not be read"}}
	}
	return &coverPart{filename: header.Filename, file: file}, nil
}

func formIssues(err error) error {
	var decodeErrs form.DecodeErrors
	if !errors.As(err, &decodeErrs) {
		return api.IssueList{{Field: "body", Reason: "must be a valid form"}}
	}
	issues := make(api.IssueList, 0, len(decodeErrs))
	for field := range decodeErrs {
		issues = append(issues, api.Issue{Field: field, Reason: "has the wrong type"})
	}
	return issues
}
