// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/quangdm/revio/internal/platform/request"
	"github.com/quangdm/revio/internal/platform/respond"
)

// Handler serves the public authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the authentication endpoints into the router.
// Both endpoints are anonymous by nature.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.exchangeToken)
}

// signup accepts an (email, username) pair and dispatches a confirmation
// code. The response echoes the pair with 200, whether the account is new
// or the code was merely refreshed.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, receipt)
}

// exchangeToken trades a confirmation code for a signed access token,
// answering 201 on success.
func (handler *Handler) exchangeToken(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.service.ExchangeToken(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, grant)
}
