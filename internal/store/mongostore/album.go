package mongostore

import (
	"context"

	"photofolio/internal/models"
	"photofolio/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateAlbum(ctx context.Context, a *models.Album) error {
	return insertOne(ctx, s.col(ColAlbums), a)
}

func (s *Store) GetAlbumByID(ctx context.Context, id string) (*models.Album, error) {
	return findOne[models.Album](ctx, s.col(ColAlbums), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetAlbumByTitle(ctx context.Context, title string) (*models.Album, error) {
	return findOne[models.Album](ctx, s.col(ColAlbums), bson.D{{Key: "title", Value: title}})
}

func (s *Store) ListAlbums(ctx context.Context, f store.AlbumFilter) ([]*models.Album, int64, error) {
	filter := bson.D{}
	if !f.IncludeHidden {
		filter = append(filter, bson.E{Key: "is_hidden", Value: false})
	}
	if f.FeaturedOnly {
		filter = append(filter, bson.E{Key: "is_featured", Value: true})
	}

	total, err := countDocs(ctx, s.col(ColAlbums), filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	items, err := findMany[models.Album](ctx, s.col(ColAlbums), filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) UpdateAlbum(ctx context.Context, a *models.Album) error {
	return replaceByID(ctx, s.col(ColAlbums), a.ID, a)
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColAlbums), id)
}
