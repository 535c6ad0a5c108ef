package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customization lifecycle statuses. Draft is the only state the owning user
// may freely edit or delete from; everything from In Production on is
// admin-controlled.
const (
	CustomizationDraft        = "Draft"
	CustomizationSubmitted    = "Submitted"
	CustomizationInReview     = "In Review"
	CustomizationQuoted       = "Quoted"
	CustomizationInProduction = "In Production"
	CustomizationReady        = "Ready"
	CustomizationDelivered    = "Delivered"
	CustomizationCancelled    = "Cancelled"
)

// CustomizationStatuses is the full status enum, used to validate admin writes.
var CustomizationStatuses = []string{
	CustomizationDraft,
	CustomizationSubmitted,
	CustomizationInReview,
	CustomizationQuoted,
	CustomizationInProduction,
	CustomizationReady,
	CustomizationDelivered,
	CustomizationCancelled,
}

// Measurements holds the optional measurement set of a design. Values are
// kept as free-form strings, matching whatever unit the customer typed.
type Measurements struct {
	Height       string `bson:"height,omitempty" json:"height,omitempty"`
	Chest        string `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist        string `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips         string `bson:"hips,omitempty" json:"hips,omitempty"`
	Shoulder     string `bson:"shoulder,omitempty" json:"shoulder,omitempty"`
	SleeveLength string `bson:"sleeveLength,omitempty" json:"sleeveLength,omitempty"`
	Length       string `bson:"length,omitempty" json:"length,omitempty"`
	Note         string `bson:"note,omitempty" json:"note,omitempty"`
}

// DesignAsset is one uploaded print or embroidery file bound to a garment
// zone. AssetID is a caller-supplied stable id used for additive merges on
// re-edit.
type DesignAsset struct {
	AssetID string `bson:"assetId" json:"assetId"`
	Zone    string `bson:"zone" json:"zone"`
	URL     string `bson:"url" json:"url"`
}

// CanvasDesign is the design-asset bundle produced by the design canvas.
type CanvasDesign struct {
	SVG           string            `bson:"svg,omitempty" json:"svg,omitempty"`
	RenderedImage string            `bson:"renderedImage,omitempty" json:"renderedImage,omitempty"`
	ZoneColors    map[string]string `bson:"zoneColors,omitempty" json:"zoneColors,omitempty"`
	ZonePatterns  map[string]string `bson:"zonePatterns,omitempty" json:"zonePatterns,omitempty"`
	AIPrompt      string            `bson:"aiPrompt,omitempty" json:"aiPrompt,omitempty"`
	Prints        []DesignAsset     `bson:"prints,omitempty" json:"prints,omitempty"`
	Embroidery    []DesignAsset     `bson:"embroidery,omitempty" json:"embroidery,omitempty"`
}

// Customization is one custom-garment design request.
type Customization struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Gender          string             `bson:"gender" json:"gender" validate:"required,oneof=Men Women"`
	DressType       string             `bson:"dressType" json:"dressType" validate:"required"`
	Fabric          string             `bson:"fabric" json:"fabric" validate:"required"`
	Color           string             `bson:"color" json:"color" validate:"required"`
	DesignNotes     string             `bson:"designNotes,omitempty" json:"designNotes,omitempty"`
	ReferenceImages []string           `bson:"referenceImages,omitempty" json:"referenceImages,omitempty"`
	Measurements    Measurements       `bson:"measurements,omitempty" json:"measurements,omitempty"`
	CanvasDesign    CanvasDesign       `bson:"canvasDesign,omitempty" json:"canvasDesign,omitempty"`
	EstimatedPrice  float64            `bson:"estimatedPrice,omitempty" json:"estimatedPrice,omitempty"`
	Status          string             `bson:"status" json:"status"`
	AdminNotes      string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	QuotedPrice     float64            `bson:"quotedPrice,omitempty" json:"quotedPrice,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidCustomizationStatus reports whether s is part of the status enum.
func ValidCustomizationStatus(s string) bool {
	for _, v := range CustomizationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// DeletableStatus reports whether the owning user may still delete the
// record. Once production has started the record is admin territory.
func (c *Customization) DeletableStatus() bool {
	switch c.Status {
	case CustomizationInProduction, CustomizationReady, CustomizationDelivered:
		return false
	}
	return true
}
