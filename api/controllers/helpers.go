package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/masjid-digital/admin-backend/api/middleware"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
)

type actor struct {
	UserID uuid.UUID
	Role   string
}

func actorFromContext(ctx context.Context) (actor, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return actor{UserID: id, Role: middleware.RoleFromContext(ctx)}, nil
}
