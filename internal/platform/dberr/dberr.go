// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Constraint Races
//
// Advisory uniqueness pre-checks in the service layer can be raced by
// concurrent requests. The Postgres constraint is the authoritative guard, so
// a unique violation slipping past a pre-check is translated here into the
// same client-facing validation error the pre-check would have produced.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quangdm/revio/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			// A race won by another request. Same client contract as the
			// advisory pre-check in the service layer.
			return apperr.ValidationError("A record with these unique fields already exists")
		case pgerrcode.ForeignKeyViolation:
			// Referenced parent vanished between lookup and write.
			return apperr.NotFound("Referenced resource")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
