// Package upload decouples photo storage from the concrete backend. A
// single Provider variant is selected at startup; callers go through
// Service and never branch on which backend is active.
//
// Create is strict: an empty buffer fails before any network call, and a
// backend failure surfaces as a wrapped error with no partial side effect
// assumed. Delete is lenient: a backend failure is logged and reported via
// the return flag, never escalated, so deleting a domain record still
// succeeds when the underlying asset delete fails.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var (
	// ErrEmptyFile rejects an empty or missing buffer before any
	// backend call is attempted.
	ErrEmptyFile = errors.New("upload: empty file buffer")
	// ErrBackend wraps failures reported by the storage backend.
	ErrBackend = errors.New("upload: backend failure")
)

// Hints are caller-supplied options forwarded with the asset.
type Hints struct {
	Title       string
	Watermark   bool
	ContentType string
}

// Result is the normalized outcome of storing one asset. StorageKey plus
// Provider are sufficient to delete the asset later regardless of backend.
type Result struct {
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	StorageKey   string  `json:"-"`
	Provider     string  `json:"provider"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Format       string  `json:"format"`
	SizeKB       float64 `json:"sizeKB"`
}

// Provider is one concrete storage backend.
type Provider interface {
	Name() string
	Store(ctx context.Context, data []byte, hints Hints) (*Result, error)
	Delete(ctx context.Context, storageKey string) error
}

// Service wraps the active Provider with the input validation and the
// strict-create/lenient-delete policy shared by all backends.
type Service struct {
	provider Provider
	log      *slog.Logger
}

func NewService(p Provider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{provider: p, log: log}
}

func (s *Service) ProviderName() string { return s.provider.Name() }

// Store validates the buffer, delegates to the backend, and normalizes the
// result. On failure no asset record exists; callers must not assume any
// side effect occurred.
func (s *Service) Store(ctx context.Context, data []byte, hints Hints) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	res, err := s.provider.Store(ctx, data, hints)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBackend, s.provider.Name(), err)
	}

	res.Provider = s.provider.Name()
	if res.ThumbnailURL == "" {
		res.ThumbnailURL = ThumbnailURL(res.URL)
	}
	if res.SizeKB == 0 {
		res.SizeKB = float64(len(data)) / 1024
	}
	return res, nil
}

// Delete removes a stored asset, best-effort. It returns false when the
// backend failed; the failure is logged and never returned as an error.
func (s *Service) Delete(ctx context.Context, storageKey, providerTag string) bool {
	if storageKey == "" {
		return true
	}
	if providerTag != "" && providerTag != s.provider.Name() {
		s.log.Warn("asset stored by a different provider, attempting delete anyway",
			"storage_key", storageKey, "stored_by", providerTag, "active", s.provider.Name())
	}
	if err := s.provider.Delete(ctx, storageKey); err != nil {
		s.log.Error("asset delete failed", "storage_key", storageKey,
			"provider", s.provider.Name(), "error", err)
		return false
	}
	return true
}

// ThumbnailURL derives a thumbnail address from the main URL with a fixed
// query transformation, so backends without native thumbnails still yield
// one deterministically.
func ThumbnailURL(mainURL string) string {
	if mainURL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(mainURL, "?") {
		sep = "&"
	}
	return mainURL + sep + "thumb=1&w=400&h=300"
}

// objectKey builds a date-partitioned storage key so buckets stay
// browsable: photos/2026/08/31/<uuid>.<ext>
func objectKey(format string) string {
	ext := format
	if ext == "" {
		ext = "bin"
	}
	now := time.Now().UTC()
	return fmt.Sprintf("photos/%d/%02d/%02d/%s.%s",
		now.Year(), now.Month(), now.Day(), uuid.NewString(), ext)
}

// probe extracts dimensions and format from the image header. Unknown
// formats are not an error; the asset is stored as-is.
func probe(data []byte) (width, height int, format string) {
	cfg, f, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, ""
	}
	return cfg.Width, cfg.Height, f
}

func contentTypeFor(format, fallback string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	}
	if fallback != "" {
		return fallback
	}
	return "application/octet-stream"
}

func joinURL(base string, parts ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "/" + strings.Join(parts, "/")
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.Join(parts, "/")
	return u.String()
}
