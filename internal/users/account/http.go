// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quangdm/revio/internal/platform/middleware"
	requestutil "github.com/quangdm/revio/internal/platform/request"
	"github.com/quangdm/revio/internal/platform/respond"
	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/pkg/pagination"
)

// Handler serves the /users endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires account endpoints into the router.
//
// /me is available to any authenticated user; the rest of the directory is
// administrator territory.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(self chi.Router) {
		self.Use(middleware.RequireAuth())
		self.Get("/me", handler.getOwnProfile)
		self.Patch("/me", handler.updateOwnProfile)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/", handler.listUsers)
		admin.Post("/", handler.createUser)
		admin.Get("/{username}", handler.getUser)
		admin.Patch("/{username}", handler.updateUser)
		admin.Delete("/{username}", handler.deleteUser)
	})
}

// # Self-Service Endpoints

func (handler *Handler) getOwnProfile(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetByUsername(request.Context(), actor.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateOwnProfile(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ProfileUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administrative Endpoints

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input AdminCreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.service.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input AdminUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.service.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
