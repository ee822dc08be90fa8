package controllers

import (
	"net/http"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/api/validators"
	"github.com/masjid-digital/admin-backend/internal/categories"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/logger"
)

// CreateCategoryRequest is the payload for a new ledger category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,max=20"`
	Icon        string  `json:"icon" validate:"omitempty,max=50"`
}

// UpdateCategoryRequest carries optional category changes.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,max=20"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// CategoriesList returns ledger categories, active only by default.
func CategoriesList(categoryService categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := categoryService.List(r.Context(), includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": list})
	}
}

// CategoryCreate registers a new ledger category.
func CategoryCreate(categoryService categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryType, err := enums.ParseCategoryType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category type"))
			return
		}

		category, err := categoryService.Create(r.Context(), categories.CreateCategoryInput{
			Name:        req.Name,
			Type:        categoryType,
			Description: req.Description,
			Color:       req.Color,
			Icon:        req.Icon,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// CategoryUpdate edits a category. Type is immutable once entries exist
// against it, so it is absent from the update payload.
func CategoryUpdate(categoryService categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req UpdateCategoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := categoryService.Update(r.Context(), id, categories.UpdateCategoryInput{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Icon:        req.Icon,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}
