package controllers

import (
	"net/http"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/api/validators"
	"github.com/masjid-digital/admin-backend/internal/auth"
	"github.com/masjid-digital/admin-backend/pkg/logger"
)

// AuthLogin exchanges credentials for an access and refresh token pair.
func AuthLogin(authService auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := authService.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
