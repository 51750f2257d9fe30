// Package store defines the persistence boundary consumed by the HTTP
// handlers. Get lookups return (nil, nil) when the record does not exist;
// updates and deletes return ErrNotFound. Unique-constraint violations
// surface as ErrDuplicate regardless of driver.
package store

import (
	"context"
	"errors"

	"photofolio/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// PhotoFilter narrows photo listings. Search matches title, description,
// and tags case-insensitively.
type PhotoFilter struct {
	Tag           string
	Search        string
	FeaturedOnly  bool
	IncludeHidden bool
	Offset        int
	Limit         int
}

// ProductFilter narrows product listings. Tag is an exact match against the
// product's tag list; Search is a case-insensitive substring match over
// name, description, tags and category.
type ProductFilter struct {
	Category     string
	Tag          string
	Search       string
	FeaturedOnly bool
	Offset       int
	Limit        int
}

// OrderFilter narrows order listings; orders are returned newest first.
type OrderFilter struct {
	UserID string
	Status string
	Limit  int
}

type AlbumFilter struct {
	IncludeHidden bool
	FeaturedOnly  bool
	Offset        int
	Limit         int
}

type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	// Photos
	CreatePhoto(ctx context.Context, p *models.Photo) error
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	GetPhotoByTitle(ctx context.Context, title string) (*models.Photo, error)
	ListPhotos(ctx context.Context, f PhotoFilter) ([]*models.Photo, int64, error)
	UpdatePhoto(ctx context.Context, p *models.Photo) error
	DeletePhoto(ctx context.Context, id string) error

	// Albums
	CreateAlbum(ctx context.Context, a *models.Album) error
	GetAlbumByID(ctx context.Context, id string) (*models.Album, error)
	GetAlbumByTitle(ctx context.Context, title string) (*models.Album, error)
	ListAlbums(ctx context.Context, f AlbumFilter) ([]*models.Album, int64, error)
	UpdateAlbum(ctx context.Context, a *models.Album) error
	DeleteAlbum(ctx context.Context, id string) error

	// Products
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]*models.Product, int64, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Carts (one per user, created lazily, never deleted)
	GetCartByUser(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, c *models.Cart) error

	// Orders
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
}
