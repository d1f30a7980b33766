package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoType classifies a progress photo by pose.
type PhotoType string

const (
	PhotoTypeFront  PhotoType = "front"
	PhotoTypeSide   PhotoType = "side"
	PhotoTypeBack   PhotoType = "back"
	PhotoTypeCustom PhotoType = "custom"
)

// Valid reports whether t is one of the accepted photo types.
func (t PhotoType) Valid() bool {
	switch t {
	case PhotoTypeFront, PhotoTypeSide, PhotoTypeBack, PhotoTypeCustom:
		return true
	}
	return false
}

// ProgressPhoto stores metadata about a progress photo owned by a user.
// The actual bytes live in object storage under ObjectKey; the row is
// created before the upload happens, so a row with no object behind it is
// a valid state (the upload may never have completed).
type ProgressPhoto struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ObjectKey string             `bson:"objectKey" json:"-"` // server-generated, never exposed
	PhotoType PhotoType          `bson:"photoType" json:"photoType"`
	PhotoDate string             `bson:"photoDate" json:"photoDate"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	// Cached read URL from the last access-URL request, served on listings
	// so consumers can render without re-minting. Consumers must treat it
	// as unusable once AccessURLExpiresAt has passed and request a fresh
	// one.
	CachedAccessURL    string     `bson:"cachedAccessUrl,omitempty" json:"signedUrl,omitempty"`
	AccessURLExpiresAt *time.Time `bson:"accessUrlExpiresAt,omitempty" json:"accessUrlExpiresAt,omitempty"`

	// UploadExpiresAt is when the write URL issued at creation stops working.
	UploadExpiresAt time.Time `bson:"uploadExpiresAt" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
