package mongostore

import (
	"context"

	"photofolio/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) GetCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	return findOne[models.Cart](ctx, s.col(ColCarts), bson.D{{Key: "user_id", Value: userID}})
}

// SaveCart upserts on user_id so the lazy-create and update paths share one
// write.
func (s *Store) SaveCart(ctx context.Context, c *models.Cart) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.col(ColCarts).ReplaceOne(ctx, bson.D{{Key: "user_id", Value: c.UserID}}, c, opts)
	return wrapError(err)
}
