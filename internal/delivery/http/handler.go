package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
	"github.com/Ruthemir95/nutritrack-sub001/internal/usecase"
)

// defaultOwnerID is used when the X-Owner-ID header is absent.
// Authentication is out of scope for this service.
const defaultOwnerID = "local"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	imports     *usecase.ImportService
	store       domain.MealStore
	maxFileSize int64
}

// NewHandler creates a new HTTP handler
func NewHandler(imports *usecase.ImportService, store domain.MealStore, maxFileSize int64) *Handler {
	return &Handler{
		imports:     imports,
		store:       store,
		maxFileSize: maxFileSize,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutritrack-backend",
		"version": "1.0.0",
	})
}

// ImportCSV handles a multipart meal-plan CSV upload and responds with the
// import summary. A total parse failure is a 422; the summary itself always
// comes back 200 even when some rows or drafts failed.
func (h *Handler) ImportCSV(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	summary, err := h.imports.ImportCSV(c.Request.Context(), ownerID(c), data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// weeklyImportRequest is the JSON body of a weekly-grid import.
type weeklyImportRequest struct {
	Grid domain.WeeklyGrid `json:"grid" binding:"required"`
}

// ImportWeekly handles a weekly import request. A JSON body carries an
// explicit day/meal-type grid; a multipart body carries a single-column
// food-list CSV that is spread over a starter week before import.
func (h *Handler) ImportWeekly(c *gin.Context) {
	if c.ContentType() == "multipart/form-data" {
		h.importWeeklyList(c)
		return
	}
	h.importWeeklyGrid(c)
}

func (h *Handler) importWeeklyGrid(c *gin.Context) {
	var req weeklyImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	summary, err := h.imports.ImportWeeklyGrid(c.Request.Context(), ownerID(c), req.Grid)
	if err != nil {
		c.JSON(weeklyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) importWeeklyList(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	summary, err := h.imports.ImportFoodList(c.Request.Context(), ownerID(c), data)
	if err != nil {
		c.JSON(weeklyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// weeklyErrorStatus maps a weekly import failure onto the response status:
// invalid grids are the caller's fault (400), anything else unprocessable (422).
func weeklyErrorStatus(err error) int {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

// readUpload pulls the multipart "file" field, enforcing the size limit. It
// writes the error response itself and reports success via ok.
func (h *Handler) readUpload(c *gin.Context) (data []byte, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload field 'file'"})
		return nil, false
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum allowed size"})
		return nil, false
	}

	data, err = io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return nil, false
	}
	if int64(len(data)) > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum allowed size"})
		return nil, false
	}

	return data, true
}

// DownloadTemplate serves a pre-filled CSV template of the requested form
// ("meal-plan" or "food-list") for the user to edit and re-import.
func (h *Handler) DownloadTemplate(c *gin.Context) {
	form := usecase.TemplateForm(c.DefaultQuery("form", string(usecase.TemplateMealPlan)))

	data, filename, err := usecase.GenerateTemplate(form, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ListMeals returns the caller's persisted meals, optionally bounded by the
// start and end query parameters (inclusive, YYYY-MM-DD).
func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.store.ListMeals(c.Request.Context(), ownerID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	if meals == nil {
		meals = []*domain.Meal{}
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func ownerID(c *gin.Context) string {
	if owner := c.GetHeader("X-Owner-ID"); owner != "" {
		return owner
	}
	return defaultOwnerID
}
