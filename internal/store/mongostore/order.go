package mongostore

import (
	"context"

	"photofolio/internal/models"
	"photofolio/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return insertOne(ctx, s.col(ColOrders), o)
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.col(ColOrders), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListOrders(ctx context.Context, f store.OrderFilter) ([]*models.Order, error) {
	filter := bson.D{}
	if f.UserID != "" {
		filter = append(filter, bson.E{Key: "user_id", Value: f.UserID})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	return findMany[models.Order](ctx, s.col(ColOrders), filter, opts)
}

func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	return replaceByID(ctx, s.col(ColOrders), o.ID, o)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColOrders), id)
}
