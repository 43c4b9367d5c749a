package handlers

import (
	"net/http"
	"strings"

	"github.com/doorstephq/doorstep/internal/copywriter"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
)

// Generate serves the copywriting endpoints.
type Generate struct {
	Copy *copywriter.Copywriter
}

type generateListingRequest struct {
	Property    map[string]any `json:"property"`
	Location    string         `json:"location,omitempty"`
	Audience    string         `json:"audience,omitempty"`
	Tone        string         `json:"tone,omitempty"`
	TargetWords int            `json:"target_words,omitempty"`
}

// Listing handles POST /generate.
func (h *Generate) Listing(w http.ResponseWriter, r *http.Request) {
	var req generateListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Property) == 0 && strings.TrimSpace(req.Location) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("property details or location are required"))
		return
	}

	result, err := h.Copy.GenerateListing(r.Context(), copywriter.ListingRequest{
		Property:    req.Property,
		Location:    req.Location,
		Audience:    req.Audience,
		Tone:        req.Tone,
		TargetWords: req.TargetWords,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Room handles POST /generate/room. Sessions are metered against the edit
// ceiling; a session at the ceiling gets 429 before any provider call.
func (h *Generate) Room(w http.ResponseWriter, r *http.Request) {
	var req copywriter.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("prompt is required"))
		return
	}

	result, err := h.Copy.GenerateRoomDescription(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type refineRequest struct {
	Text        string `json:"text"`
	Instruction string `json:"instruction"`
}

type refineResponse struct {
	RefinedText string `json:"refined_text"`
}

// Refine handles POST /refine-text.
func (h *Generate) Refine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Instruction) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("both 'text' and 'instruction' are required"))
		return
	}

	refined, err := h.Copy.RefineText(r.Context(), req.Text, req.Instruction)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refineResponse{RefinedText: refined})
}

// Transform handles POST /api/transform-text.
func (h *Generate) Transform(w http.ResponseWriter, r *http.Request) {
	var req copywriter.TransformRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OriginalText) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("original_text is required"))
		return
	}

	result, err := h.Copy.TransformText(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Variant handles POST /generate-text-variant.
func (h *Generate) Variant(w http.ResponseWriter, r *http.Request) {
	var req copywriter.VariantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OriginalText) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("original_text is required"))
		return
	}

	result, err := h.Copy.RegenerateVariant(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
