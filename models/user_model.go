package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	Id       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	ImageUrl string             `bson:"profileImage" json:"profileImage,omitempty"`
	Type     string             `bson:"type,omitempty" json:"type,omitempty" validate:"required,oneof=user admin"`
	Cart     Cart               `bson:"cart" json:"cart"`
}

// CustomizationSnapshot is the denormalized copy of a design's defining
// fields captured when it is added to the cart, so the cart renders correctly
// even if the source design is edited afterwards.
type CustomizationSnapshot struct {
	Gender        string `bson:"gender" json:"gender"`
	DressType     string `bson:"dressType" json:"dressType"`
	Fabric        string `bson:"fabric" json:"fabric"`
	Color         string `bson:"color" json:"color"`
	DesignNotes   string `bson:"designNotes,omitempty" json:"designNotes,omitempty"`
	RenderedImage string `bson:"renderedImage,omitempty" json:"renderedImage,omitempty"`
}

// CartCustomization is one custom-design entry in the cart.
type CartCustomization struct {
	Price    float64               `bson:"price" json:"price"`
	Quantity int                   `bson:"quantity" json:"quantity"`
	Snapshot CustomizationSnapshot `bson:"snapshot" json:"snapshot"`
}

// Cart is the per-user in-progress selection, embedded in the user document.
// Items maps product id (hex) to size to quantity. A quantity of zero never
// persists: the leaf is removed, and an emptied size map removes the product
// key with it.
type Cart struct {
	Items          map[string]map[string]int    `bson:"items" json:"items"`
	Customizations map[string]CartCustomization `bson:"customizations" json:"customizations"`
}

// EnsureMaps initialises nil maps so a cart decoded from an older document
// shape behaves like an empty cart.
func (c *Cart) EnsureMaps() {
	if c.Items == nil {
		c.Items = make(map[string]map[string]int)
	}
	if c.Customizations == nil {
		c.Customizations = make(map[string]CartCustomization)
	}
}

// Empty reports whether the cart holds nothing.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0 && len(c.Customizations) == 0
}
