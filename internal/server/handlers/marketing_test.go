package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorstephq/doorstep/internal/branding"
	"github.com/doorstephq/doorstep/internal/hashtag"
)

func marketingRouter(t *testing.T) *chi.Mux {
	t.Helper()

	h := &Marketing{Hashtags: hashtag.NewService(), Branding: branding.Default()}

	r := chi.NewRouter()
	r.Post("/marketing/hashtags", h.GenerateHashtags)
	r.Route("/agencies", func(r chi.Router) {
		r.Get("/", h.ListAgencies)
		r.Get("/{id}", h.GetAgency)
		r.Get("/{id}/colors", h.AgencyColors)
		r.Post("/{id}/select-template", h.SelectTemplate)
	})
	return r
}

func TestGenerateHashtags(t *testing.T) {
	router := marketingRouter(t)

	body, err := json.Marshal(hashtag.Request{
		PropertyType: "cottage",
		Location:     "York",
		Platform:     "instagram",
		MaxHashtags:  10,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/marketing/hashtags", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result hashtag.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.NotEmpty(t, result.Hashtags)
	assert.LessOrEqual(t, result.Count, 10)
	assert.Equal(t, "instagram", result.Platform)
}

func TestListAgencies(t *testing.T) {
	router := marketingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agencies", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Agencies []branding.AgencyBranding `json:"agencies"`
		Count    int                       `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, len(resp.Agencies), resp.Count)
	assert.GreaterOrEqual(t, resp.Count, 2)
}

func TestGetAgency(t *testing.T) {
	router := marketingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agencies/doorstep", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var agency branding.AgencyBranding
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&agency))
	assert.Equal(t, "doorstep", agency.ID)
	assert.NotEmpty(t, agency.Templates)
}

func TestGetAgencyNotFound(t *testing.T) {
	router := marketingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agencies/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestAgencyColors(t *testing.T) {
	router := marketingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/agencies/doorstep/colors", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var colors branding.ColorPalette
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&colors))
	assert.NotEmpty(t, colors.Primary)
}

func TestSelectTemplate(t *testing.T) {
	router := marketingRouter(t)

	body, err := json.Marshal(map[string]any{
		"property_character": "luxury",
		"price":              2_500_000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/agencies/doorstep/select-template", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AgencyID         string                  `json:"agency_id"`
		SelectedTemplate branding.TemplateType   `json:"selected_template"`
		TemplateConfig   branding.TemplateConfig `json:"template_config"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "doorstep", resp.AgencyID)
	assert.Equal(t, branding.TemplatePremium, resp.SelectedTemplate)
	assert.NotEmpty(t, resp.TemplateConfig.Name)
}
