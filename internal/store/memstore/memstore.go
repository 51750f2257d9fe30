// Package memstore is an in-memory store.Store used by handler tests and
// local development. It mirrors the mongo driver's semantics: (nil, nil)
// for missing gets, ErrNotFound on update/delete misses, ErrDuplicate on
// unique-key violations.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"photofolio/internal/models"
	"photofolio/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	photos   map[string]*models.Photo
	albums   map[string]*models.Album
	products map[string]*models.Product
	carts    map[string]*models.Cart // keyed by user id
	orders   map[string]*models.Order
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    map[string]*models.User{},
		photos:   map[string]*models.Photo{},
		albums:   map[string]*models.Album{},
		products: map[string]*models.Product{},
		carts:    map[string]*models.Cart{},
		orders:   map[string]*models.Order{},
	}
}

// ---- users ----

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.users[id]), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && (existing.Email == u.Email || existing.Username == u.Username) {
			return store.ErrDuplicate
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// ---- photos ----

func (s *Store) CreatePhoto(_ context.Context, p *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.photos {
		if existing.Title == p.Title {
			return store.ErrDuplicate
		}
	}
	cp := *p
	s.photos[p.ID] = &cp
	return nil
}

func (s *Store) GetPhotoByID(_ context.Context, id string) (*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPhoto(s.photos[id]), nil
}

func (s *Store) GetPhotoByTitle(_ context.Context, title string) (*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.photos {
		if p.Title == title {
			return copyPhoto(p), nil
		}
	}
	return nil, nil
}

func (s *Store) ListPhotos(_ context.Context, f store.PhotoFilter) ([]*models.Photo, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Photo
	for _, p := range s.photos {
		if !f.IncludeHidden && p.IsHidden {
			continue
		}
		if f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if f.Tag != "" && !containsString(p.Tags, f.Tag) {
			continue
		}
		if f.Search != "" && !photoMatches(p, f.Search) {
			continue
		}
		matched = append(matched, copyPhoto(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, f.Offset, f.Limit), total, nil
}

func (s *Store) UpdatePhoto(_ context.Context, p *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[p.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.photos {
		if id != p.ID && existing.Title == p.Title {
			return store.ErrDuplicate
		}
	}
	cp := *p
	s.photos[p.ID] = &cp
	return nil
}

func (s *Store) DeletePhoto(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.photos, id)
	return nil
}

// ---- albums ----

func (s *Store) CreateAlbum(_ context.Context, a *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.albums {
		if existing.Title == a.Title {
			return store.ErrDuplicate
		}
	}
	cp := *a
	s.albums[a.ID] = &cp
	return nil
}

func (s *Store) GetAlbumByID(_ context.Context, id string) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAlbum(s.albums[id]), nil
}

func (s *Store) GetAlbumByTitle(_ context.Context, title string) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.albums {
		if a.Title == title {
			return copyAlbum(a), nil
		}
	}
	return nil, nil
}

func (s *Store) ListAlbums(_ context.Context, f store.AlbumFilter) ([]*models.Album, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Album
	for _, a := range s.albums {
		if !f.IncludeHidden && a.IsHidden {
			continue
		}
		if f.FeaturedOnly && !a.IsFeatured {
			continue
		}
		matched = append(matched, copyAlbum(a))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, f.Offset, f.Limit), total, nil
}

func (s *Store) UpdateAlbum(_ context.Context, a *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.albums[a.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *a
	s.albums[a.ID] = &cp
	return nil
}

func (s *Store) DeleteAlbum(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.albums[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.albums, id)
	return nil
}

// ---- products ----

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProduct(s.products[id]), nil
}

func (s *Store) ListProducts(_ context.Context, f store.ProductFilter) ([]*models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Product
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Tag != "" && !containsString(p.Tags, f.Tag) {
			continue
		}
		if f.Search != "" && !productMatches(p, f.Search) {
			continue
		}
		if f.FeaturedOnly && !p.DisplayFlags.IsFeatured {
			continue
		}
		matched = append(matched, copyProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, f.Offset, f.Limit), total, nil
}

func (s *Store) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// ---- carts ----

func (s *Store) GetCartByUser(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCart(s.carts[userID]), nil
}

func (s *Store) SaveCart(_ context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	s.carts[c.UserID] = &cp
	return nil
}

// ---- orders ----

func (s *Store) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	s.orders[o.ID] = &cp
	return nil
}

func (s *Store) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOrder(s.orders[id]), nil
}

func (s *Store) ListOrders(_ context.Context, f store.OrderFilter) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Order
	for _, o := range s.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		matched = append(matched, copyOrder(o))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *Store) UpdateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	s.orders[o.ID] = &cp
	return nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// ---- helpers ----

func photoMatches(p *models.Photo, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func productMatches(p *models.Product, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.FavoritePhotos = append([]string(nil), u.FavoritePhotos...)
	cp.FavoriteProducts = append([]string(nil), u.FavoriteProducts...)
	return &cp
}

func copyPhoto(p *models.Photo) *models.Photo {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}

func copyAlbum(a *models.Album) *models.Album {
	if a == nil {
		return nil
	}
	cp := *a
	cp.PhotoIDs = append([]string(nil), a.PhotoIDs...)
	cp.Tags = append([]string(nil), a.Tags...)
	return &cp
}

func copyProduct(p *models.Product) *models.Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.PhotoIDs = append([]string(nil), p.PhotoIDs...)
	return &cp
}

func copyCart(c *models.Cart) *models.Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp
}

func copyOrder(o *models.Order) *models.Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp
}
