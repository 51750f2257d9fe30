package mongostore

import (
	"context"

	"photofolio/internal/models"
	"photofolio/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return insertOne(ctx, s.col(ColProducts), p)
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return findOne[models.Product](ctx, s.col(ColProducts), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListProducts(ctx context.Context, f store.ProductFilter) ([]*models.Product, int64, error) {
	filter := bson.D{}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Tag != "" {
		filter = append(filter, bson.E{Key: "tags", Value: f.Tag})
	}
	if f.Search != "" {
		re := bson.Regex{Pattern: escapeRegex(f.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "tags", Value: re}},
			bson.D{{Key: "category", Value: re}},
		}})
	}
	if f.FeaturedOnly {
		filter = append(filter, bson.E{Key: "display_flags.is_featured", Value: true})
	}

	total, err := countDocs(ctx, s.col(ColProducts), filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	items, err := findMany[models.Product](ctx, s.col(ColProducts), filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	return replaceByID(ctx, s.col(ColProducts), p.ID, p)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColProducts), id)
}
