package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

// Blob store folders.
const (
	folderReferenceImages = "customizations/references"
	folderRenders         = "customizations/renders"
	folderPrints          = "customizations/prints"
	folderEmbroidery      = "customizations/embroidery"
)

// AssetInput is one incoming print or embroidery asset. Data carries raw
// base64 to be uploaded; URL carries an already-hosted asset as-is.
type AssetInput struct {
	AssetID string `json:"assetId"`
	Zone    string `json:"zone"`
	Data    string `json:"data,omitempty"`
	URL     string `json:"url,omitempty"`
}

// CanvasInput is the incoming design-asset bundle.
type CanvasInput struct {
	SVG           string            `json:"svg,omitempty"`
	RenderedImage string            `json:"renderedImage,omitempty"`
	ZoneColors    map[string]string `json:"zoneColors,omitempty"`
	ZonePatterns  map[string]string `json:"zonePatterns,omitempty"`
	AIPrompt      string            `json:"aiPrompt,omitempty"`
	Prints        []AssetInput      `json:"prints,omitempty"`
	Embroidery    []AssetInput      `json:"embroidery,omitempty"`
}

// CustomizationInput is the payload for creating a design.
type CustomizationInput struct {
	Gender          string              `json:"gender"`
	DressType       string              `json:"dressType"`
	Fabric          string              `json:"fabric"`
	Color           string              `json:"color"`
	DesignNotes     string              `json:"designNotes,omitempty"`
	ReferenceImages []string            `json:"referenceImages,omitempty"`
	Measurements    models.Measurements `json:"measurements,omitempty"`
	Canvas          CanvasInput         `json:"canvas,omitempty"`
	EstimatedPrice  float64             `json:"estimatedPrice,omitempty"`
}

// CustomizationPatch carries a partial update; nil fields keep the stored
// value. Asset bundles merge additively, never replace.
type CustomizationPatch struct {
	Gender          *string              `json:"gender,omitempty"`
	DressType       *string              `json:"dressType,omitempty"`
	Fabric          *string              `json:"fabric,omitempty"`
	Color           *string              `json:"color,omitempty"`
	DesignNotes     *string              `json:"designNotes,omitempty"`
	ReferenceImages []string             `json:"referenceImages,omitempty"`
	Measurements    *models.Measurements `json:"measurements,omitempty"`
	Canvas          *CanvasInput         `json:"canvas,omitempty"`
	EstimatedPrice  *float64             `json:"estimatedPrice,omitempty"`
}

type CustomizationService struct {
	customizations CustomizationStore
	blobs          BlobStore
	log            *slog.Logger
}

func NewCustomizationService(customizations CustomizationStore, blobs BlobStore, log *slog.Logger) *CustomizationService {
	return &CustomizationService{customizations: customizations, blobs: blobs, log: log}
}

// Create persists a new design in Draft. Asset uploads are best-effort:
// a failed upload drops that asset, the save still succeeds.
func (s *CustomizationService) Create(ctx context.Context, owner primitive.ObjectID, in CustomizationInput) (*models.Customization, error) {
	if err := validateDesignFields(in.Gender, in.DressType, in.Fabric, in.Color); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &models.Customization{
		ID:              primitive.NewObjectID(),
		UserID:          owner,
		Gender:          in.Gender,
		DressType:       in.DressType,
		Fabric:          in.Fabric,
		Color:           in.Color,
		DesignNotes:     in.DesignNotes,
		ReferenceImages: s.uploadBatch(ctx, folderReferenceImages, in.ReferenceImages),
		Measurements:    in.Measurements,
		CanvasDesign:    s.buildCanvas(ctx, in.Canvas),
		EstimatedPrice:  in.EstimatedPrice,
		Status:          models.CustomizationDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.customizations.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert customization: %w", err)
	}
	return c, nil
}

// Get returns the design, owner-checked.
func (s *CustomizationService) Get(ctx context.Context, id, requester primitive.ObjectID) (*models.Customization, error) {
	return s.ownedCustomization(ctx, id, requester)
}

// Update merges the patch over the stored record field-by-field. Asset-bundle
// fields merge additively by asset id; new raw assets go through the blob
// store the same way Create does.
func (s *CustomizationService) Update(ctx context.Context, id, requester primitive.ObjectID, patch CustomizationPatch) (*models.Customization, error) {
	c, err := s.ownedCustomization(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	if patch.Gender != nil {
		c.Gender = *patch.Gender
	}
	if patch.DressType != nil {
		c.DressType = *patch.DressType
	}
	if patch.Fabric != nil {
		c.Fabric = *patch.Fabric
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if patch.DesignNotes != nil {
		c.DesignNotes = *patch.DesignNotes
	}
	if patch.Measurements != nil {
		c.Measurements = *patch.Measurements
	}
	if patch.EstimatedPrice != nil {
		c.EstimatedPrice = *patch.EstimatedPrice
	}
	if len(patch.ReferenceImages) > 0 {
		c.ReferenceImages = append(c.ReferenceImages, s.uploadBatch(ctx, folderReferenceImages, patch.ReferenceImages)...)
	}
	if patch.Canvas != nil {
		s.mergeCanvas(ctx, &c.CanvasDesign, *patch.Canvas)
	}

	if err := validateDesignFields(c.Gender, c.DressType, c.Fabric, c.Color); err != nil {
		return nil, err
	}

	c.UpdatedAt = time.Now()
	if err := s.customizations.Replace(ctx, c); err != nil {
		return nil, fmt.Errorf("update customization: %w", err)
	}
	return c, nil
}

// Submit moves a design from Draft to Submitted. Any other starting status
// is rejected unchanged.
func (s *CustomizationService) Submit(ctx context.Context, id, requester primitive.ObjectID) (*models.Customization, error) {
	c, err := s.ownedCustomization(ctx, id, requester)
	if err != nil {
		return nil, err
	}
	if c.Status != models.CustomizationDraft {
		return nil, fmt.Errorf("submit from %q: %w", c.Status, ErrInvalidState)
	}
	if err := s.customizations.UpdateStatus(ctx, id, models.CustomizationSubmitted); err != nil {
		return nil, fmt.Errorf("submit customization: %w", err)
	}
	c.Status = models.CustomizationSubmitted
	return c, nil
}

// Delete hard-deletes the design unless production has started.
func (s *CustomizationService) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	c, err := s.ownedCustomization(ctx, id, requester)
	if err != nil {
		return err
	}
	if !c.DeletableStatus() {
		return fmt.Errorf("delete from %q: %w", c.Status, ErrInvalidState)
	}
	if err := s.customizations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customization: %w", err)
	}
	return nil
}

// AdminSetStatus overwrites the status unconditionally. Only the enum value
// is checked; admins may move a design to any status, including backwards.
func (s *CustomizationService) AdminSetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.ValidCustomizationStatus(status) {
		return fmt.Errorf("status %q: %w", status, ErrInvalidValue)
	}
	c, err := s.customizations.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find customization: %w", err)
	}
	if c == nil {
		return fmt.Errorf("customization %s: %w", id.Hex(), ErrNotFound)
	}
	if err := s.customizations.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set customization status: %w", err)
	}
	return nil
}

// AdminListAll returns every design, newest first.
func (s *CustomizationService) AdminListAll(ctx context.Context) ([]models.Customization, error) {
	return s.customizations.ListAll(ctx)
}

func (s *CustomizationService) ownedCustomization(ctx context.Context, id, requester primitive.ObjectID) (*models.Customization, error) {
	c, err := s.customizations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customization: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("customization %s: %w", id.Hex(), ErrNotFound)
	}
	if c.UserID != requester {
		return nil, fmt.Errorf("customization %s: %w", id.Hex(), ErrForbidden)
	}
	return c, nil
}

func validateDesignFields(gender, dressType, fabric, color string) error {
	if gender != "Men" && gender != "Women" {
		return fmt.Errorf("gender must be Men or Women: %w", ErrValidation)
	}
	if dressType == "" {
		return fmt.Errorf("dressType is required: %w", ErrValidation)
	}
	if fabric == "" {
		return fmt.Errorf("fabric is required: %w", ErrValidation)
	}
	if color == "" {
		return fmt.Errorf("color is required: %w", ErrValidation)
	}
	return nil
}

func (s *CustomizationService) buildCanvas(ctx context.Context, in CanvasInput) models.CanvasDesign {
	cd := models.CanvasDesign{
		SVG:          in.SVG,
		ZoneColors:   in.ZoneColors,
		ZonePatterns: in.ZonePatterns,
		AIPrompt:     in.AIPrompt,
	}
	if in.RenderedImage != "" {
		if url, err := s.blobs.Upload(ctx, in.RenderedImage, folderRenders); err != nil {
			s.log.Warn("render upload failed, asset dropped", "error", err)
		} else {
			cd.RenderedImage = url
		}
	}
	cd.Prints = s.uploadAssets(ctx, folderPrints, in.Prints, nil)
	cd.Embroidery = s.uploadAssets(ctx, folderEmbroidery, in.Embroidery, nil)
	return cd
}

// mergeCanvas applies an incoming bundle over the stored one. Scalars
// overwrite when set, zone maps replace when present, and print/embroidery
// lists merge additively by asset id so a client resending only new assets
// cannot clobber previously accepted ones.
func (s *CustomizationService) mergeCanvas(ctx context.Context, cd *models.CanvasDesign, in CanvasInput) {
	if in.SVG != "" {
		cd.SVG = in.SVG
	}
	if in.AIPrompt != "" {
		cd.AIPrompt = in.AIPrompt
	}
	if in.ZoneColors != nil {
		cd.ZoneColors = in.ZoneColors
	}
	if in.ZonePatterns != nil {
		cd.ZonePatterns = in.ZonePatterns
	}
	if in.RenderedImage != "" {
		if url, err := s.blobs.Upload(ctx, in.RenderedImage, folderRenders); err != nil {
			s.log.Warn("render upload failed, asset dropped", "error", err)
		} else {
			cd.RenderedImage = url
		}
	}
	cd.Prints = append(cd.Prints, s.uploadAssets(ctx, folderPrints, in.Prints, cd.Prints)...)
	cd.Embroidery = append(cd.Embroidery, s.uploadAssets(ctx, folderEmbroidery, in.Embroidery, cd.Embroidery)...)
}

// uploadBatch uploads raw payloads concurrently and returns the URLs of the
// successful subset, in input order. One failed upload never cancels its
// siblings.
func (s *CustomizationService) uploadBatch(ctx context.Context, folder string, payloads []string) []string {
	if len(payloads) == 0 {
		return nil
	}
	results := make([]string, len(payloads))
	var wg sync.WaitGroup
	for i, data := range payloads {
		wg.Add(1)
		go func(i int, data string) {
			defer wg.Done()
			url, err := s.blobs.Upload(ctx, data, folder)
			if err != nil {
				s.log.Warn("asset upload failed, asset dropped", "folder", folder, "error", err)
				return
			}
			results[i] = url
		}(i, data)
	}
	wg.Wait()

	urls := make([]string, 0, len(payloads))
	for _, u := range results {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// uploadAssets resolves incoming assets to stored DesignAssets, skipping ids
// already present in existing (the stored entry wins) and dropping uploads
// that fail.
func (s *CustomizationService) uploadAssets(ctx context.Context, folder string, in []AssetInput, existing []models.DesignAsset) []models.DesignAsset {
	if len(in) == 0 {
		return nil
	}
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[a.AssetID] = true
	}

	results := make([]models.DesignAsset, len(in))
	var wg sync.WaitGroup
	for i, a := range in {
		if a.AssetID == "" || known[a.AssetID] {
			continue
		}
		known[a.AssetID] = true
		wg.Add(1)
		go func(i int, a AssetInput) {
			defer wg.Done()
			url := a.URL
			if a.Data != "" {
				uploaded, err := s.blobs.Upload(ctx, a.Data, folder)
				if err != nil {
					s.log.Warn("asset upload failed, asset dropped", "assetId", a.AssetID, "error", err)
					return
				}
				url = uploaded
			}
			if url == "" {
				return
			}
			results[i] = models.DesignAsset{AssetID: a.AssetID, Zone: a.Zone, URL: url}
		}(i, a)
	}
	wg.Wait()

	assets := make([]models.DesignAsset, 0, len(in))
	for _, a := range results {
		if a.AssetID != "" {
			assets = append(assets, a)
		}
	}
	return assets
}
