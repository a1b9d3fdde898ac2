package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docpod/internal/api/errors"
	"docpod/internal/api/middleware"
	"docpod/internal/api/v1/dto"
	"docpod/internal/api/v1/services"
	"docpod/internal/app/export"
)

// PodcastHandler handles podcast-related API endpoints
type PodcastHandler struct {
	service        services.PodcastService
	maxUploadBytes int64
}

// NewPodcastHandler creates a new podcast handler
func NewPodcastHandler(service services.PodcastService, maxUploadBytes int64) *PodcastHandler {
	return &PodcastHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles POST /api/v1/podcasts
//
// @Summary Upload a document and start podcast generation
// @Description Accepts a PDF or TXT document and queues it for conversion into a two-speaker podcast
// @Tags podcasts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF or TXT document"
// @Success 202 {object} dto.PodcastResponse "Job accepted"
// @Failure 400 {object} errors.APIError "Missing file"
// @Failure 401 {object} errors.APIError "Not signed in"
// @Failure 413 {object} errors.APIError "File too large"
// @Failure 422 {object} errors.APIError "Unsupported file type"
// @Router /podcasts [post]
func (h *PodcastHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	header, err := c.FormFile("file")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			middleware.HandleError(c, errors.NewPayloadTooLargeError(h.maxUploadBytes))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("No file part"))
		return
	}
	if header.Filename == "" {
		middleware.HandleError(c, errors.NewBadRequestError("No selected file"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Could not read the uploaded file"))
		return
	}
	defer file.Close()

	response, err := h.service.CreatePodcast(c.Request.Context(), userID, header.Filename, file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/podcasts/%d", response.ID))
	c.JSON(http.StatusAccepted, response)
}

// List handles GET /api/v1/podcasts
//
// @Summary List the caller's podcasts
// @Description Returns one page of the caller's podcast history, newest first
// @Tags podcasts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1) minimum(1)
// @Success 200 {object} dto.PaginatedPodcastsResponse "One page of podcasts"
// @Failure 401 {object} errors.APIError "Not signed in"
// @Failure 422 {object} errors.APIError "Invalid page"
// @Header 200 {string} X-Total-Count "Total number of podcasts"
// @Router /podcasts [get]
func (h *PodcastHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var query dto.ListPodcastsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListPodcasts(c.Request.Context(), userID, query.Page)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/podcasts/:id
//
// @Summary Get a podcast job
// @Description Returns the status of one of the caller's jobs. Poll this until it is completed or failed.
// @Tags podcasts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Podcast ID" minimum(1)
// @Success 200 {object} dto.PodcastResponse "Podcast job"
// @Failure 400 {object} errors.APIError "Invalid ID"
// @Failure 403 {object} errors.APIError "Owned by another user"
// @Failure 404 {object} errors.APIError "Podcast not found"
// @Router /podcasts/{id} [get]
func (h *PodcastHandler) Get(c *gin.Context) {
	id, ok := podcastID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	response, err := h.service.GetPodcast(c.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Download handles GET /api/v1/podcasts/:id/download
//
// @Summary Download a generated podcast
// @Tags podcasts
// @Produce audio/mpeg
// @Security BearerAuth
// @Param id path int true "Podcast ID" minimum(1)
// @Success 200 {file} file "MP3 attachment"
// @Failure 403 {object} errors.APIError "Owned by another user"
// @Failure 404 {object} errors.APIError "Podcast or audio not found"
// @Router /podcasts/{id}/download [get]
func (h *PodcastHandler) Download(c *gin.Context) {
	id, ok := podcastID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	audio, err := h.service.OpenAudio(c.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer audio.Content.Close()

	c.DataFromReader(http.StatusOK, audio.Size, "audio/mpeg", audio.Content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", audio.Name),
	})
}

// Delete handles DELETE /api/v1/podcasts/:id
//
// @Summary Delete a podcast
// @Description Deletes the job record, then its generated audio and uploaded document
// @Tags podcasts
// @Security BearerAuth
// @Param id path int true "Podcast ID" minimum(1)
// @Success 204 "Deleted"
// @Failure 403 {object} errors.APIError "Owned by another user"
// @Failure 404 {object} errors.APIError "Podcast not found"
// @Failure 500 {object} errors.APIError "Nothing was deleted"
// @Router /podcasts/{id} [delete]
func (h *PodcastHandler) Delete(c *gin.Context) {
	id, ok := podcastID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	if err := h.service.DeletePodcast(c.Request.Context(), userID, id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /api/v1/podcasts/export
//
// @Summary Export podcast history
// @Tags podcasts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Security BearerAuth
// @Param format query string false "Export format" default(xlsx) Enums(xlsx,csv)
// @Success 200 {file} file "History spreadsheet"
// @Failure 422 {object} errors.APIError "Unknown format"
// @Router /podcasts/export [get]
func (h *PodcastHandler) Export(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var query dto.ExportQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}
	if query.Format == "" {
		query.Format = export.FormatXLSX
	}

	// Buffer so a failed export can still report a proper status
	var buf bytes.Buffer
	if err := h.service.ExportPodcasts(c.Request.Context(), userID, query.Format, &buf); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"podcasts.%s\"", query.Format))
	c.Data(http.StatusOK, export.ContentType(query.Format), buf.Bytes())
}

func podcastID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid podcast ID"))
		return 0, false
	}
	return id, true
}
