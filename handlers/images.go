package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/services"
)

// multipart memory ceiling; individual files are size-checked downstream
const maxUploadMemory = 8 << 20

// ImageHandler serves image upload and removal for the admin API.
type ImageHandler struct {
	Images *services.ImageService
}

func NewImageHandler(images *services.ImageService) *ImageHandler {
	return &ImageHandler{Images: images}
}

// Upload accepts a multipart batch under the "images" field. Files may carry
// an optional owner_type/owner_id pair; without one the stored images stay
// unattached until an entity create or update claims them by filename.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		WriteAPIError(w, http.StatusBadRequest, "No files provided under the 'images' field")
		return
	}

	ownerType := r.FormValue("owner_type")
	var ownerID uint
	if raw := r.FormValue("owner_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "Invalid owner_id")
			return
		}
		ownerID = uint(parsed)
	}

	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			files = append(files, services.UploadFile{OriginalName: header.Filename})
			continue
		}
		data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadBytes+1))
		file.Close()
		if err != nil {
			files = append(files, services.UploadFile{OriginalName: header.Filename})
			continue
		}
		files = append(files, services.UploadFile{OriginalName: header.Filename, Data: data})
	}

	results := h.Images.Upload(ownerType, ownerID, files)

	status := http.StatusCreated
	for _, result := range results {
		if !result.Success {
			// partial failure still returns the full per-file result list
			status = http.StatusMultiStatus
			break
		}
	}
	writeJSON(w, status, map[string]interface{}{"results": results})
}

// Delete removes a stored image, its thumbnail, and its row by filename.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		WriteAPIError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	if err := h.Images.RemoveByFilename(filename); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "Image not found")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
