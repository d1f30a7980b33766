package api

import (
	"errors"
	"net/http"
	"strings"

	"fittrack/internal/apperror"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextUserIDKey is the gin context key the authenticated user id is
// stored under.
const ContextUserIDKey = "userID"

// AuthMiddleware authenticates requests by resolving the bearer token
// through the configured verifier and stashing the caller identity in the
// request context. Identity always travels explicitly from here; nothing
// downstream reads ambient auth state.
func AuthMiddleware(verifier service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(ContextUserIDKey, identity.UserID)
		c.Next()
	}
}

// abortWithError returns a JSON error body and stops the handler chain.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps a service error onto an HTTP status. Unrecognized
// errors collapse to a generic 500 so internal detail never leaks.
func respondError(c *gin.Context, err error) {
	switch apperror.KindOf(err) {
	case apperror.KindAuth:
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case apperror.KindValidation:
		abortWithError(c, http.StatusBadRequest, err.Error())
	case apperror.KindNotFound:
		abortWithError(c, http.StatusNotFound, err.Error())
	case apperror.KindStorage, apperror.KindPersistence:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID reads the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}
