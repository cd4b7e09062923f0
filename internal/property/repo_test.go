package property

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"estateweb/internal/platform/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepo_CRUD(t *testing.T) {
	repo := NewStaticRepo(nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, Payload{Title: "Lake House", Location: "Austin, TX", Status: StatusForSale})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := repo.Update(ctx, 10, Payload{Title: "Lake House", Location: "Austin, TX", Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, repo.Delete(ctx, 10))
	_, err = repo.GetByID(ctx, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, 10, Payload{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 10), ErrNotFound)

	all, err := repo.List(ctx, Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestStaticRepo_DoesNotShareCatalog(t *testing.T) {
	repo := NewStaticRepo(nil)
	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.Len(t, Catalog(), 9)
}

func TestAPIRepo(t *testing.T) {
	var gotQuery, gotMethod string
	var gotBody Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
		switch {
		case r.URL.Path == "/properties" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(Catalog()[:2])
		case r.URL.Path == "/properties" && r.Method == http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Property{ID: 10, Title: gotBody.Title})
		case r.URL.Path == "/properties/featured", r.URL.Path == "/properties/search":
			_ = json.NewEncoder(w).Encode([]Property{Catalog()[0]})
		case r.URL.Path == "/properties/1":
			if r.Method == http.MethodDelete {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			_ = json.NewEncoder(w).Encode(Catalog()[0])
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	repo := NewAPIRepo(apiclient.NewClient(apiclient.Config{BaseURL: srv.URL}, nil))
	ctx := context.Background()

	list, err := repo.List(ctx, Filters{MinBedrooms: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(list))
	assert.Equal(t, "minBedrooms=3", gotQuery)

	_, err = repo.Featured(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "limit=4", gotQuery)

	_, err = repo.SearchByLocation(ctx, "beverly hills")
	require.NoError(t, err)
	assert.Equal(t, "q=beverly+hills", gotQuery)

	p, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Luxury Villa in Beverly Hills", p.Title)

	created, err := repo.Create(ctx, Payload{Title: "Lake House", Status: StatusForSale})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.Equal(t, "Lake House", gotBody.Title)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.Equal(t, http.MethodDelete, gotMethod)

	_, err = repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, 2, Payload{})
	assert.ErrorIs(t, err, ErrNotFound)
}
