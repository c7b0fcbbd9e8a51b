// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quangdm/revio/internal/platform/middleware"
	"github.com/quangdm/revio/internal/platform/perm"
	requestutil "github.com/quangdm/revio/internal/platform/request"
	"github.com/quangdm/revio/internal/platform/respond"
	"github.com/quangdm/revio/pkg/pagination"
)

// Handler serves HTTP requests for catalog titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires title endpoints into the router.
//
// Reads are public; mutations are restricted to administrators.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTitles)
	router.Get("/{titleID}", handler.getTitle)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequirePermission(perm.CatalogWrite))
		protected.Post("/", handler.createTitle)
		protected.Patch("/{titleID}", handler.updateTitle)
		protected.Delete("/{titleID}", handler.deleteTitle)
	})
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filters := Filters{
		Name:         query.Get("name"),
		Year:         query.Get("year"),
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
	}

	titles, total, err := handler.service.List(request.Context(), filters, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
