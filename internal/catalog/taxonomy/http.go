// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quangdm/revio/internal/platform/middleware"
	"github.com/quangdm/revio/internal/platform/perm"
	requestutil "github.com/quangdm/revio/internal/platform/request"
	"github.com/quangdm/revio/internal/platform/respond"
	"github.com/quangdm/revio/pkg/pagination"
)

// Handler serves HTTP requests for one term kind. The server mounts one
// instance at /categories and another at /genres.
type Handler struct {
	service *Service
	kind    string
}

// NewHandler constructs a [Handler] scoped to the given term kind.
func NewHandler(service *Service, kind string) *Handler {
	return &Handler{service: service, kind: kind}
}

// RegisterRoutes wires term endpoints into the router.
//
// Reads are public; mutations are restricted to administrators.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTerms)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequirePermission(perm.CatalogWrite))
		protected.Post("/", handler.createTerm)
		protected.Delete("/{slug}", handler.deleteTerm)
	})
}

func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	terms, total, err := handler.service.List(request.Context(), handler.kind, search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, terms, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createTerm(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.Create(request.Context(), handler.kind, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, term)
}

func (handler *Handler) deleteTerm(writer http.ResponseWriter, request *http.Request) {
	slugParam := requestutil.Param(request, "slug")

	if err := handler.service.DeleteBySlug(request.Context(), handler.kind, slugParam); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
