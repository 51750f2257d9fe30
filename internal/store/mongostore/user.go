package mongostore

import (
	"context"

	"photofolio/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return insertOne(ctx, s.col(ColUsers), u)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, s.col(ColUsers), bson.D{{Key: "username", Value: username}})
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return replaceByID(ctx, s.col(ColUsers), u.ID, u)
}
