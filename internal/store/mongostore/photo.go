package mongostore

import (
	"context"

	"photofolio/internal/models"
	"photofolio/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreatePhoto(ctx context.Context, p *models.Photo) error {
	return insertOne(ctx, s.col(ColPhotos), p)
}

func (s *Store) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	return findOne[models.Photo](ctx, s.col(ColPhotos), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetPhotoByTitle(ctx context.Context, title string) (*models.Photo, error) {
	return findOne[models.Photo](ctx, s.col(ColPhotos), bson.D{{Key: "title", Value: title}})
}

func (s *Store) ListPhotos(ctx context.Context, f store.PhotoFilter) ([]*models.Photo, int64, error) {
	filter := photoFilter(f)

	total, err := countDocs(ctx, s.col(ColPhotos), filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	items, err := findMany[models.Photo](ctx, s.col(ColPhotos), filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) UpdatePhoto(ctx context.Context, p *models.Photo) error {
	return replaceByID(ctx, s.col(ColPhotos), p.ID, p)
}

func (s *Store) DeletePhoto(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColPhotos), id)
}

func photoFilter(f store.PhotoFilter) bson.D {
	filter := bson.D{}
	if !f.IncludeHidden {
		filter = append(filter, bson.E{Key: "is_hidden", Value: false})
	}
	if f.FeaturedOnly {
		filter = append(filter, bson.E{Key: "is_featured", Value: true})
	}
	if f.Tag != "" {
		filter = append(filter, bson.E{Key: "tags", Value: f.Tag})
	}
	if f.Search != "" {
		re := bson.Regex{Pattern: escapeRegex(f.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "tags", Value: re}},
		}})
	}
	return filter
}
