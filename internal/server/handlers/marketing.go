package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/doorstephq/doorstep/internal/branding"
	"github.com/doorstephq/doorstep/internal/core"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/hashtag"
)

// Marketing serves the hashtag and agency branding endpoints.
type Marketing struct {
	Hashtags *hashtag.Service
	Branding *branding.Registry
}

// GenerateHashtags handles POST /marketing/hashtags.
func (h *Marketing) GenerateHashtags(w http.ResponseWriter, r *http.Request) {
	var req hashtag.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, h.Hashtags.Generate(req))
}

type agenciesResponse struct {
	Agencies []branding.AgencyBranding `json:"agencies"`
	Count    int                       `json:"count"`
}

// ListAgencies handles GET /agencies.
func (h *Marketing) ListAgencies(w http.ResponseWriter, r *http.Request) {
	agencies := h.Branding.List()
	writeJSON(w, http.StatusOK, agenciesResponse{Agencies: agencies, Count: len(agencies)})
}

// GetAgency handles GET /agencies/{id}.
func (h *Marketing) GetAgency(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "id")

	agency, ok := h.Branding.Get(agencyID)
	if !ok {
		respondWithError(w, r, apperrors.NewNotFoundError(fmt.Sprintf("Agency %q not found", agencyID)))
		return
	}

	writeJSON(w, http.StatusOK, agency)
}

// AgencyColors handles GET /agencies/{id}/colors.
func (h *Marketing) AgencyColors(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "id")

	agency, ok := h.Branding.Get(agencyID)
	if !ok {
		respondWithError(w, r, apperrors.NewNotFoundError(fmt.Sprintf("Agency %q not found", agencyID)))
		return
	}

	writeJSON(w, http.StatusOK, agency.Colors)
}

type selectTemplateRequest struct {
	PropertyCharacter string `json:"property_character"`
	Price             int    `json:"price,omitempty"`
	Bedrooms          int    `json:"bedrooms,omitempty"`
	PropertyType      string `json:"property_type,omitempty"`
}

type selectTemplateResponse struct {
	AgencyID         string                  `json:"agency_id"`
	SelectedTemplate branding.TemplateType   `json:"selected_template"`
	TemplateConfig   branding.TemplateConfig `json:"template_config"`
	PropertyDetails  selectTemplateRequest   `json:"property_details"`
}

// SelectTemplate handles POST /agencies/{id}/select-template.
func (h *Marketing) SelectTemplate(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "id")

	var req selectTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	character := core.PropertyCharacter(strings.ToLower(strings.TrimSpace(req.PropertyCharacter)))
	if character == "" {
		character = core.CharacterModern
	}

	selected, cfg, err := h.Branding.SelectTemplate(agencyID, character, req.Price)
	if err != nil {
		respondWithError(w, r, apperrors.NewNotFoundError(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, selectTemplateResponse{
		AgencyID:         strings.ToLower(strings.TrimSpace(agencyID)),
		SelectedTemplate: selected,
		TemplateConfig:   cfg,
		PropertyDetails:  req,
	})
}
