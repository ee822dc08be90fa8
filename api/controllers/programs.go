package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/api/validators"
	"github.com/masjid-digital/admin-backend/internal/programs"
	"github.com/masjid-digital/admin-backend/pkg/logger"
)

// CreateProgramRequest is the payload for a new fundraising program.
type CreateProgramRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description *string         `json:"description"`
	Target      decimal.Decimal `json:"target"`
}

// UpdateProgramRequest carries optional program changes.
type UpdateProgramRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=200"`
	Description *string          `json:"description"`
	Target      *decimal.Decimal `json:"target"`
	IsActive    *bool            `json:"is_active"`
}

// ProgramsList is public so the donation form can render active campaigns.
// Admins pass include_inactive=true to see the full set.
func ProgramsList(programService programs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := programService.List(r.Context(), !includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"programs": list})
	}
}

// ProgramGet returns one program.
func ProgramGet(programService programs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "programID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		program, err := programService.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, program)
	}
}

// ProgramCreate registers a new fundraising program.
func ProgramCreate(programService programs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProgramRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		program, err := programService.Create(r.Context(), programs.CreateProgramInput{
			Title:       req.Title,
			Description: req.Description,
			Target:      req.Target,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, program)
	}
}

// ProgramUpdate edits program metadata or toggles its active flag.
func ProgramUpdate(programService programs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "programID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req UpdateProgramRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		program, err := programService.Update(r.Context(), id, programs.UpdateProgramInput{
			Title:       req.Title,
			Description: req.Description,
			Target:      req.Target,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, program)
	}
}
