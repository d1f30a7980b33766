package api

import (
	"net/http"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timeFormat is the wire format for expiry timestamps.
const timeFormat = time.RFC3339

// PhotoHandler serves the progress photo endpoints.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- Request/Response Structs ---

type UploadProgressPhotoRequest struct {
	PhotoType string `json:"photo_type"`
	PhotoDate string `json:"photo_date"`
	Notes     string `json:"notes"`
}

type UploadProgressPhotoResponse struct {
	PhotoID   string `json:"photo_id"`
	UploadURL string `json:"upload_url"`
	ExpiresAt string `json:"expires_at"`
}

type GetPhotoURLRequest struct {
	PhotoID string `json:"photo_id"`
}

type GetPhotoURLResponse struct {
	SignedURL string `json:"signed_url"`
	ExpiresAt string `json:"expires_at"`
}

// --- Handler Methods ---

// UploadProgressPhoto handles POST /upload-progress-photo. It validates
// the request, creates a pending photo record and returns a presigned
// write URL valid for one hour. The client uploads the bytes itself; a
// record whose upload never happens is tolerated.
func (h *PhotoHandler) UploadProgressPhoto(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UploadProgressPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required fields: photo_type, photo_date")
		return
	}

	intent, err := h.photoService.RequestUpload(c.Request.Context(), userID, domain.PhotoType(req.PhotoType), req.PhotoDate, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadProgressPhotoResponse{
		PhotoID:   intent.PhotoID,
		UploadURL: intent.UploadURL,
		ExpiresAt: intent.ExpiresAt.UTC().Format(timeFormat),
	})
}

// GetPhotoURL handles POST /get-photo-url. It returns a presigned read URL
// valid for 24 hours. A photo that does not exist and a photo owned by
// someone else produce the same 404.
func (h *PhotoHandler) GetPhotoURL(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GetPhotoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PhotoID == "" {
		abortWithError(c, http.StatusBadRequest, "Missing required field: photo_id")
		return
	}

	photoID, err := primitive.ObjectIDFromHex(req.PhotoID)
	if err != nil {
		// A malformed id cannot name any photo; same answer as unknown.
		abortWithError(c, http.StatusNotFound, "Photo not found or access denied")
		return
	}

	accessURL, err := h.photoService.GetAccessURL(c.Request.Context(), userID, photoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GetPhotoURLResponse{
		SignedURL: accessURL.SignedURL,
		ExpiresAt: accessURL.ExpiresAt.UTC().Format(timeFormat),
	})
}

// ListPhotos handles GET /api/v1/photos with an optional photo_type filter.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	photoType := domain.PhotoType(c.Query("photo_type"))
	photos, err := h.photoService.ListPhotos(c.Request.Context(), userID, photoType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// DeletePhoto handles DELETE /api/v1/photos/:id.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	photoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Photo not found or access denied")
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), userID, photoID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
