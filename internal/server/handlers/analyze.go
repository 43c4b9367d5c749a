package handlers

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/doorstephq/doorstep/internal/core"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/vision"
)

// maxUploadBytes bounds one multipart upload; individual photos rarely pass
// 10MB but agents batch a whole shoot at once.
const maxUploadBytes = 256 << 20

// Analyze serves the photo analysis endpoint.
type Analyze struct {
	Analyzer *vision.Analyzer
	Policy   vision.UploadPolicy
}

// Images handles POST /analyze-images. Photos are analyzed concurrently; the
// shared pacer spaces the underlying provider calls so a batch cannot burst
// past the provider limit. Results are positional with the uploaded files.
func (h *Analyze) Images(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError(fmt.Sprintf("invalid multipart request: %v", err)))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondWithError(w, r, apperrors.NewInvalidInputError("no files provided"))
		return
	}

	type upload struct {
		name string
		data []byte
	}
	uploads := make([]upload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respondWithError(w, r, apperrors.NewInvalidInputError(fmt.Sprintf("%s: unable to read upload", header.Filename)))
			return
		}
		data, err := io.ReadAll(file)
		file.Close() // nolint:errcheck // best-effort cleanup
		if err != nil {
			respondWithError(w, r, apperrors.NewInvalidInputError(fmt.Sprintf("%s: unable to read upload", header.Filename)))
			return
		}
		if err := h.Policy.Validate(header.Filename, data); err != nil {
			respondWithError(w, r, apperrors.NewInvalidInputError(err.Error()))
			return
		}
		uploads = append(uploads, upload{name: header.Filename, data: data})
	}

	results := make([]*core.PhotoAnalysis, len(uploads))
	errs := make([]error, len(uploads))

	var wg sync.WaitGroup
	for i, up := range uploads {
		wg.Add(1)
		go func(i int, name string, data []byte) {
			defer wg.Done()
			results[i], errs[i] = h.Analyzer.AnalyzePhoto(r.Context(), name, data)
		}(i, up.name, up.data)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, results)
}
