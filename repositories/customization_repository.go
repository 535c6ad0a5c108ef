package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

type CustomizationRepository struct {
	col *mongo.Collection
}

func NewCustomizationRepository(col *mongo.Collection) *CustomizationRepository {
	return &CustomizationRepository{col: col}
}

func (r *CustomizationRepository) Insert(ctx context.Context, c *models.Customization) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *CustomizationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customization, error) {
	var c models.Customization
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomizationRepository) Replace(ctx context.Context, c *models.Customization) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (r *CustomizationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *CustomizationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CustomizationRepository) ListAll(ctx context.Context) ([]models.Customization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Customization
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
