package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge/api"
)

func sampleTemplate(name string) api.Template {
	return api.Template{
		Name: name,
		Design: api.Design{
			Format: api.NewLabelFormat(3, 2, api.Inches),
			Elements: []api.Element{
				{
					ID:       "1",
					Kind:     api.KindField,
					Field:    "STYLE",
					Geometry: api.Geometry{X: 10, Y: 10, Width: 100, Height: 20},
					Text:     &api.TextState{Text: "ABC", FontSize: 20},
				},
			},
		},
	}
}

func TestTemplatesRoundTrip(t *testing.T) {
	var saved api.Template
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/newLabels/customer/acme/", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]api.Template{sampleTemplate("summer")})
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acme")
	ctx := context.Background()

	templates, err := c.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "summer", templates[0].Name)
	assert.Equal(t, "STYLE", templates[0].Design.Elements[0].Field)

	require.NoError(t, c.SaveTemplate(ctx, sampleTemplate("winter")))
	assert.Equal(t, "winter", saved.Name)
}

func TestSaveTemplateRequiresName(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "acme")
	err := c.SaveTemplate(context.Background(), api.Template{})
	assert.Error(t, err)
}

func TestTemplatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acme")
	_, err := c.Templates(context.Background())
	assert.Error(t, err)
}

func TestFieldsAndFonts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fields":
			json.NewEncoder(w).Encode([]string{"QTY", "STYLE", "DEPT"})
		case "/fonts":
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]Font{{Family: "Arial", File: "arial.ttf"}})
			case http.MethodPost:
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "Futura", r.FormValue("family"))
				_, header, err := r.FormFile("font")
				require.NoError(t, err)
				assert.Equal(t, "futura.ttf", header.Filename)
				w.WriteHeader(http.StatusCreated)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acme")
	ctx := context.Background()

	fields, err := c.Fields(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"QTY", "STYLE", "DEPT"}, fields)

	fonts, err := c.Fonts(ctx)
	require.NoError(t, err)
	require.Len(t, fonts, 1)
	assert.Equal(t, "arial.ttf", fonts[0].File)

	require.NoError(t, c.UploadFont(ctx, "Futura", "futura.ttf", []byte{0, 1, 0, 0}))
}

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := NewCache(CacheConfig{
		DBPath: filepath.Join(t.TempDir(), "cache.db"),
		TTL:    ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, 0)

	require.NoError(t, c.Put("acme", sampleTemplate("summer")))

	got, err := c.Get("acme", "summer")
	require.NoError(t, err)
	assert.Equal(t, "summer", got.Name)
	require.Len(t, got.Design.Elements, 1)
	assert.Equal(t, "STYLE", got.Design.Elements[0].Field)
	assert.Equal(t, 3.0, got.Design.Format.RealWidth)

	_, err = c.Get("acme", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get("other", "summer")
	assert.ErrorIs(t, err, ErrNotFound, "customers must not see each other's templates")
}

func TestCachePutReplaces(t *testing.T) {
	c := newTestCache(t, 0)

	first := sampleTemplate("summer")
	require.NoError(t, c.Put("acme", first))

	second := sampleTemplate("summer")
	second.Design.Format.RealWidth = 5
	require.NoError(t, c.Put("acme", second))

	got, err := c.Get("acme", "summer")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Design.Format.RealWidth)

	all, err := c.List("acme")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, -time.Hour)

	require.NoError(t, c.Put("acme", sampleTemplate("stale")))

	_, err := c.Get("acme", "stale")
	assert.ErrorIs(t, err, ErrNotFound)

	pruned, err := c.Prune()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t, 0)

	require.NoError(t, c.Put("acme", sampleTemplate("summer")))
	require.NoError(t, c.Delete("acme", "summer"))

	_, err := c.Get("acme", "summer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache(CacheConfig{
		DBPath:   filepath.Join(t.TempDir(), "cache.db"),
		Disabled: true,
	})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("acme", sampleTemplate("summer")))
	_, err = c.Get("acme", "summer")
	assert.ErrorIs(t, err, ErrCacheDisabled)
}
