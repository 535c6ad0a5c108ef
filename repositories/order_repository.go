package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(col *mongo.Collection) *OrderRepository {
	return &OrderRepository{col: col}
}

func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"gatewayOrderId": gatewayOrderID})
}

// SettlePayment flips payment atomically with a conditional update. The
// filter on payment=false makes a duplicate callback a no-op, reported to the
// caller via ModifiedCount.
func (r *OrderRepository) SettlePayment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "payment": false},
		bson.M{"$set": bson.M{"payment": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *OrderRepository) UpdateItemProductionStatus(ctx context.Context, id primitive.ObjectID, index int, status string) error {
	field := fmt.Sprintf("items.%d.productionStatus", index)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: status}})
	return err
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.findAll(ctx, bson.M{"userId": userID})
}

// ListByProductsOrCustom returns orders containing any of the given products
// or any CUSTOM line item, newest first.
func (r *OrderRepository) ListByProductsOrCustom(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	if productIDs == nil {
		productIDs = []primitive.ObjectID{}
	}
	filter := bson.M{"$or": []bson.M{
		{"items.productId": bson.M{"$in": productIDs}},
		{"items.type": models.ItemCustom},
	}}
	return r.findAll(ctx, filter)
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) findAll(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Order
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
