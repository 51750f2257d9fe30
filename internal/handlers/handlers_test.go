package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"photofolio/internal/handlers"
	"photofolio/internal/models"
	"photofolio/internal/service/token"
	"photofolio/internal/store/memstore"
	httpserver "photofolio/internal/transport/http"
	"photofolio/internal/upload"
)

var testSecret = []byte("test-secret")

// fakePublisher records published events instead of talking to Kafka.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, _ := event.(map[string]any)
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (f *fakePublisher) byType(typ string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.Event["type"] == typ {
			out = append(out, e)
		}
	}
	return out
}

// fakeProvider is an in-memory upload backend with switchable failures.
type fakeProvider struct {
	mu          sync.Mutex
	storeCalls  int
	deleteCalls int
	deleted     []string
	failDelete  bool
	lastHints   upload.Hints
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Store(_ context.Context, data []byte, hints upload.Hints) (*upload.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCalls++
	f.lastHints = hints
	id := uuid.NewString()
	key := "photos/test/" + id + ".png"
	return &upload.Result{
		URL:        "https://cdn.test/assets/" + id + ".png",
		StorageKey: key,
		Width:      32,
		Height:     16,
		Format:     "png",
		SizeKB:     float64(len(data)) / 1024,
	}, nil
}

func (f *fakeProvider) Delete(_ context.Context, storageKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.deleted = append(f.deleted, storageKey)
	if f.failDelete {
		return fmt.Errorf("backend unavailable")
	}
	return nil
}

// env stands up the full router against in-memory backends so requests run
// through the real guard and routing.
type env struct {
	t        *testing.T
	e        *echo.Echo
	store    *memstore.Store
	tokens   *token.Service
	pub      *fakePublisher
	provider *fakeProvider
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := memstore.New()
	tokens := token.New(testSecret, 0)
	pub := &fakePublisher{}
	provider := &fakeProvider{}
	uploads := upload.NewService(provider, nil)

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Tokens:         tokens,
		AuthHandler:    &handlers.AuthHandler{Store: st, Tokens: tokens, Producer: pub},
		UserHandler:    &handlers.UserHandler{Store: st},
		PhotoHandler:   &handlers.PhotoHandler{Store: st, Uploads: uploads, Producer: pub},
		AlbumHandler:   &handlers.AlbumHandler{Store: st},
		ProductHandler: &handlers.ProductHandler{Store: st},
		CartHandler:    &handlers.CartHandler{Store: st},
		OrderHandler:   &handlers.OrderHandler{Store: st, Producer: pub},
		SearchHandler:  &handlers.SearchHandler{Store: st},
	})

	return &env{t: t, e: e, store: st, tokens: tokens, pub: pub, provider: provider}
}

func (env *env) request(method, path, tok string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *env) multipart(path, tok string, fields map[string]string, fileField string, file []byte) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "upload.png")
		require.NoError(env.t, err)
		_, err = fw.Write(file)
		require.NoError(env.t, err)
	}
	require.NoError(env.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// newUser seeds an account directly in the store and returns it with a
// valid token.
func (env *env) newUser(username, role string) (*models.User, string) {
	env.t.Helper()

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.SetPassword("password123")
	require.NoError(env.t, user.HashPassword())
	require.NoError(env.t, env.store.CreateUser(context.Background(), user))

	tok, err := env.tokens.Issue(user.ID, user.Role, user.Username, user.Email)
	require.NoError(env.t, err)
	return user, tok
}

func (env *env) seedProduct(name, typ string, price float64) *models.Product {
	env.t.Helper()

	now := time.Now().UTC()
	p := &models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Category:  "prints",
		Stock:     10,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if typ != models.ProductPrint {
		p.DigitalDownload = models.DigitalDownload{FileURL: "https://cdn.test/files/" + p.ID + ".zip"}
	}
	require.NoError(env.t, env.store.CreateProduct(context.Background(), p))
	return p
}

func (env *env) seedPhoto(title string, hidden, featured bool, tags ...string) *models.Photo {
	env.t.Helper()

	now := time.Now().UTC()
	p := &models.Photo{
		ID:           uuid.NewString(),
		Title:        title,
		ImageURL:     "https://cdn.test/photos/" + title + ".png",
		ThumbnailURL: "https://cdn.test/photos/" + title + ".png?thumb=1",
		StorageKey:   "photos/seed/" + title + ".png",
		Provider:     "fake",
		Tags:         tags,
		IsHidden:     hidden,
		IsFeatured:   featured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(env.t, env.store.CreatePhoto(context.Background(), p))
	return p
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for x := 0; x < 32; x++ {
		img.Set(x, 8, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
