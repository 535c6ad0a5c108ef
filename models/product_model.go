package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `json:"productId,omitempty" bson:"_id,omitempty"`
	AdminID     primitive.ObjectID `bson:"adminId" json:"adminId"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Images      []string           `bson:"images" json:"images" validate:"required,min=1,dive"`
}
