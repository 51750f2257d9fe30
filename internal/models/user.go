package models

import (
	"errors"
	"time"

	"photofolio/internal/hash"
)

// User carries its secret through an explicit two-state lifecycle: a call to
// SetPassword leaves the record in the pending-hash state, and HashPassword
// moves it to the hashed state exactly once. Records loaded from the store
// are never in the pending state, so a stored hash can never be re-hashed.
type User struct {
	ID               string    `bson:"_id" json:"id"`
	Username         string    `bson:"username" json:"username"`
	FirstName        string    `bson:"first_name" json:"firstName"`
	LastName         string    `bson:"last_name" json:"lastName"`
	Email            string    `bson:"email" json:"email"`
	PasswordHash     string    `bson:"password_hash" json:"-"`
	Role             string    `bson:"role" json:"role"`
	ProfilePicture   string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	FavoritePhotos   []string  `bson:"favorite_photos,omitempty" json:"favoritePhotos"`
	FavoriteProducts []string  `bson:"favorite_products,omitempty" json:"favoriteProducts"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`

	pendingPassword string
	pendingHash     bool
}

var ErrNoPendingPassword = errors.New("models: no pending password to hash")

// SetPassword records a new plaintext secret and marks it pending. The
// plaintext never leaves the struct and is discarded on hashing.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = plain
	u.pendingHash = true
}

// PendingHash reports whether a freshly set secret is waiting to be hashed.
func (u *User) PendingHash() bool {
	return u.pendingHash
}

// HashPassword hashes the pending secret into PasswordHash. Calling it with
// no pending secret is an error so that persisting an unhashed user is
// caught rather than silently storing an empty hash.
func (u *User) HashPassword() error {
	if !u.pendingHash {
		return ErrNoPendingPassword
	}
	h, err := hash.Password(u.pendingPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = h
	u.pendingPassword = ""
	u.pendingHash = false
	return nil
}

// CheckPassword validates a login candidate against the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	return hash.Compare(candidate, u.PasswordHash)
}

// IsFavorite reports whether id is in the given favorites list.
func IsFavorite(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// AddFavorite appends id if absent and returns the updated list.
func AddFavorite(list []string, id string) []string {
	if IsFavorite(list, id) {
		return list
	}
	return append(list, id)
}

// RemoveFavorite drops id from the list if present.
func RemoveFavorite(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
