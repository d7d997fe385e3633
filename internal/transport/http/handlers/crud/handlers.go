// Package crudhandler exposes a crud.Resource as list / get / create / patch / remove routes.
package crudhandler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/db"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 200
)

// Parent adds GET {path}/by/{Segment}/{Param}, listing rows whose Filter column equals the param.
type Parent struct {
	Segment string
	Param   string
	Filter  string
}

type Handler[T, C, P any] struct {
	Resource crud.Resource[T, C, P]
	Entity   string
	Parents  []Parent
}

func New[T, C, P any](resource crud.Resource[T, C, P], entity string, parents ...Parent) *Handler[T, C, P] {
	return &Handler[T, C, P]{Resource: resource, Entity: entity, Parents: parents}
}

// FromRepo is New for a concrete repo, letting the type arguments be inferred.
func FromRepo[T, C, P any](repo *crud.Repo[T, C, P], entity string, parents ...Parent) *Handler[T, C, P] {
	return New[T, C, P](repo, entity, parents...)
}

// RegisterRoutes mounts the collection on path. extra runs inside the same route block so
// entity-specific routes share the prefix.
func (h *Handler[T, C, P]) RegisterRoutes(r chi.Router, path string, extra ...func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		h.RegisterReadRoutes(r)
		r.Post("/", h.handleCreate)
		r.Patch("/{uuid}", h.handlePatch)
		r.Delete("/{uuid}", h.handleDelete)
		for _, fn := range extra {
			fn(r)
		}
	})
}

// RegisterReadRoutes adds list, by-parent and get routes to a router already scoped to the
// collection path.
func (h *Handler[T, C, P]) RegisterReadRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	for _, parent := range h.Parents {
		r.Get(fmt.Sprintf("/by/%s/{%s}", parent.Segment, parent.Param), h.handleListBy(parent))
	}
	r.Get("/{uuid}", h.handleGet)
}

func (h *Handler[T, C, P]) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, queryFilters(r))
}

func (h *Handler[T, C, P]) handleListBy(parent Parent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := queryFilters(r)
		filters[parent.Filter] = chi.URLParam(r, parent.Param)
		h.list(w, r, filters)
	}
}

func (h *Handler[T, C, P]) list(w http.ResponseWriter, r *http.Request, filters map[string]string) {
	query := crud.ListQuery{Filters: filters}
	page, paginated := shared.ParsePagination(r, defaultPageLimit, maxPageLimit)
	if paginated {
		query.Page = db.Page{Limit: page.Limit, Offset: page.Offset}
	}

	rows, total, err := h.Resource.List(r.Context(), query)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !paginated {
		api.Success(w, rows)
		return
	}
	api.Success(w, api.Paginated{Data: rows, Pagination: api.Page(total, page.Page, page.Limit)})
}

func (h *Handler[T, C, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	row, err := h.Resource.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, row)
}

func (h *Handler[T, C, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	inputs, err := shared.DecodeBulk[C](r)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if err := shared.Each(inputs); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		for i := range inputs {
			if setter, ok := any(&inputs[i]).(interface{ DefaultCreatedBy(string) }); ok {
				setter.DefaultCreatedBy(user.UserUUID)
			}
		}
	}
	if err := h.Resource.Create(r.Context(), inputs); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if len(inputs) == 1 {
		api.Created(w, h.Entity+" created")
		return
	}
	api.Created(w, fmt.Sprintf("%d %s records created", len(inputs), h.Entity))
}

func (h *Handler[T, C, P]) handlePatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var patch P
	if err := shared.DecodeJSON(r, &patch); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if err := shared.Struct(patch); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if err := h.Resource.Patch(r.Context(), chi.URLParam(r, "uuid"), patch); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Updated(w, h.Entity+" updated")
}

func (h *Handler[T, C, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Resource.Remove(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Deleted(w, h.Entity+" deleted")
}

// queryFilters forwards every single-valued query parameter; the resource ignores names it
// does not know.
func queryFilters(r *http.Request) map[string]string {
	filters := map[string]string{}
	for name, values := range r.URL.Query() {
		if name == "page" || name == "limit" || len(values) == 0 {
			continue
		}
		filters[name] = values[0]
	}
	return filters
}
