package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/internal/repository"
	"fittrack/internal/repository/memory"
	"fittrack/internal/service"
	"fittrack/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testServer struct {
	router *gin.Engine
	photos repository.PhotoRepository

	aliceID    primitive.ObjectID
	bobID      primitive.ObjectID
	aliceToken string
	bobToken   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewMemoryUserRepository()
	profiles := memory.NewMemoryProfileRepository()
	photos := memory.NewMemoryPhotoRepository()
	weights := memory.NewMemoryWeightRepository()
	measurements := memory.NewMemoryMeasurementRepository()
	workouts := memory.NewMemoryWorkoutRepository()

	ts := &testServer{
		photos:     photos,
		aliceID:    primitive.NewObjectID(),
		bobID:      primitive.NewObjectID(),
		aliceToken: "alice-token",
		bobToken:   "bob-token",
	}

	verifier := service.NewStaticVerifier(map[string]string{
		ts.aliceToken: ts.aliceID.Hex(),
		ts.bobToken:   ts.bobID.Hex(),
	})

	router := gin.New()
	SetupRoutes(
		router,
		verifier,
		service.NewAuthService(users, "test-secret", time.Hour),
		service.NewPhotoService(photos, storage.NewMemoryStorage(), storage.NewKeyGenerator()),
		service.NewProfileService(profiles),
		service.NewMeasurementService(weights, measurements),
		service.NewWorkoutService(workouts),
		service.NewStatsService(weights, workouts, profiles),
	)
	ts.router = router
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestUploadProgressPhotoRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"photo_type": "front", "photo_date": "2026-08-15"}

	w := ts.do(t, http.MethodPost, "/upload-progress-photo", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/upload-progress-photo", "wrong-token", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Rejected requests leave no trace.
	stored, err := ts.photos.ListByOwner(context.Background(), ts.aliceID, "")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestUploadProgressPhotoRejectsBadHeader(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-progress-photo", bytes.NewReader(nil))
	req.Header.Set("Authorization", ts.aliceToken) // no Bearer prefix
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Authorization header format must be Bearer {token}", resp["error"])
}

func TestPhotoEndpointsWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/upload-progress-photo", "/get-photo-url"} {
		t.Run(path, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, path, ts.aliceToken, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

			var resp map[string]string
			decodeJSON(t, w, &resp)
			assert.Equal(t, "Method not allowed", resp["error"])
		})
	}
}

func TestPhotoEndpointsPreflight(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/upload-progress-photo", "/get-photo-url"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", "POST")
			req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
			w := httptest.NewRecorder()
			ts.router.ServeHTTP(w, req)

			// Preflight succeeds without a token.
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		})
	}
}

func TestUploadProgressPhotoValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    map[string]string
		wantMsg string
	}{
		{
			"missing photo_date",
			map[string]string{"photo_type": "front"},
			"Missing required fields: photo_type, photo_date",
		},
		{
			"missing photo_type",
			map[string]string{"photo_date": "2026-08-15"},
			"Missing required fields: photo_type, photo_date",
		},
		{
			"invalid photo_type",
			map[string]string{"photo_type": "selfie", "photo_date": "2026-08-15"},
			"Invalid photo_type. Must be one of: front, side, back, custom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/upload-progress-photo", ts.aliceToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			decodeJSON(t, w, &resp)
			assert.Equal(t, tt.wantMsg, resp["error"])
		})
	}

	stored, err := ts.photos.ListByOwner(context.Background(), ts.aliceID, "")
	require.NoError(t, err)
	assert.Empty(t, stored, "invalid requests must not create records")
}

func TestUploadThenGetPhotoURLFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/upload-progress-photo", ts.aliceToken, map[string]string{
		"photo_type": "front",
		"photo_date": "2026-08-15",
		"notes":      "week 12",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var upload UploadProgressPhotoResponse
	decodeJSON(t, w, &upload)
	require.NotEmpty(t, upload.PhotoID)
	require.NotEmpty(t, upload.UploadURL)

	uploadExpiry, err := time.Parse(timeFormat, upload.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), uploadExpiry, time.Minute)

	// The owner gets a read URL bounded to 24 hours.
	w = ts.do(t, http.MethodPost, "/get-photo-url", ts.aliceToken, map[string]string{
		"photo_id": upload.PhotoID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var access GetPhotoURLResponse
	decodeJSON(t, w, &access)
	require.NotEmpty(t, access.SignedURL)

	accessExpiry, err := time.Parse(timeFormat, access.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), accessExpiry, time.Minute)
}

func TestGetPhotoURLAccessControl(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/upload-progress-photo", ts.aliceToken, map[string]string{
		"photo_type": "back",
		"photo_date": "2026-08-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var upload UploadProgressPhotoResponse
	decodeJSON(t, w, &upload)

	// Another user, an unknown id and a malformed id all answer the same.
	for _, photoID := range []string{upload.PhotoID, primitive.NewObjectID().Hex(), "zzzz"} {
		w = ts.do(t, http.MethodPost, "/get-photo-url", ts.bobToken, map[string]string{
			"photo_id": photoID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]string
		decodeJSON(t, w, &resp)
		assert.Equal(t, "Photo not found or access denied", resp["error"])
	}
}

func TestGetPhotoURLMissingID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/get-photo-url", ts.aliceToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Missing required field: photo_id", resp["error"])
}

func TestListPhotosIsOwnerScoped(t *testing.T) {
	ts := newTestServer(t)

	for i, tt := range []struct{ token, photoType string }{
		{ts.aliceToken, "front"},
		{ts.aliceToken, "side"},
		{ts.bobToken, "front"},
	} {
		w := ts.do(t, http.MethodPost, "/upload-progress-photo", tt.token, map[string]string{
			"photo_type": tt.photoType,
			"photo_date": fmt.Sprintf("2026-08-%02d", 10+i),
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ts.do(t, http.MethodGet, "/api/v1/photos", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Photos []struct {
			PhotoType string `json:"photoType"`
		} `json:"photos"`
	}
	decodeJSON(t, w, &resp)
	assert.Len(t, resp.Photos, 2)

	w = ts.do(t, http.MethodGet, "/api/v1/photos?photo_type=front", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Photos, 1)
	assert.Equal(t, "front", resp.Photos[0].PhotoType)
}

func TestListPhotosCarriesCachedURL(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/upload-progress-photo", ts.aliceToken, map[string]string{
		"photo_type": "front",
		"photo_date": "2026-08-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var upload UploadProgressPhotoResponse
	decodeJSON(t, w, &upload)

	var listed struct {
		Photos []struct {
			SignedURL          string `json:"signedUrl"`
			AccessURLExpiresAt string `json:"accessUrlExpiresAt"`
		} `json:"photos"`
	}

	// Before any access-URL request there is nothing cached.
	w = ts.do(t, http.MethodGet, "/api/v1/photos", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &listed)
	require.Len(t, listed.Photos, 1)
	assert.Empty(t, listed.Photos[0].SignedURL)

	w = ts.do(t, http.MethodPost, "/get-photo-url", ts.aliceToken, map[string]string{
		"photo_id": upload.PhotoID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var access GetPhotoURLResponse
	decodeJSON(t, w, &access)

	// The listing now serves the minted URL with its expiry, so clients
	// can reuse it until expiry instead of re-minting on every render.
	w = ts.do(t, http.MethodGet, "/api/v1/photos", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &listed)
	require.Len(t, listed.Photos, 1)
	assert.Equal(t, access.SignedURL, listed.Photos[0].SignedURL)
	assert.NotEmpty(t, listed.Photos[0].AccessURLExpiresAt)
}

func TestDeletePhotoEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/upload-progress-photo", ts.aliceToken, map[string]string{
		"photo_type": "custom",
		"photo_date": "2026-08-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var upload UploadProgressPhotoResponse
	decodeJSON(t, w, &upload)

	w = ts.do(t, http.MethodDelete, "/api/v1/photos/"+upload.PhotoID, ts.bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/photos/"+upload.PhotoID, ts.aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodPost, "/get-photo-url", ts.aliceToken, map[string]string{
		"photo_id": upload.PhotoID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
