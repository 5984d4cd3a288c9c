package data

import (
	"context"
	"testing"
	"time"

	"complaint-service/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func newTestRepo(t *testing.T) *ComplaintRepo {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// A second connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))

	return NewComplaintRepo(&Data{db: db}, log.DefaultLogger)
}

func saveComplaint(t *testing.T, repo *ComplaintRepo, productID, complainantID, content, country string) *domain.Complaint {
	t.Helper()
	saved, err := repo.Save(context.Background(), domain.NewComplaint(productID, content, complainantID, country))
	require.NoError(t, err)
	return saved
}

func TestComplaintRepo_SaveAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	saved := saveComplaint(t, repo, "product-1", "complainant-1", "broken", "Poland")

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, saved.Counter)
}

func TestComplaintRepo_FindByID(t *testing.T) {
	repo := newTestRepo(t)
	saved := saveComplaint(t, repo, "product-1", "complainant-1", "broken", "Poland")

	found, err := repo.FindByID(context.Background(), saved.ID)

	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, "product-1", found.ProductID)
	assert.Equal(t, "complainant-1", found.ComplainantID)
	assert.Equal(t, "broken", found.Content)
	assert.Equal(t, "Poland", found.Country)
	assert.Equal(t, 1, found.Counter)
	assert.Nil(t, found.UpdateDate)
}

func TestComplaintRepo_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestComplaintRepo_FindByProductAndComplainant(t *testing.T) {
	repo := newTestRepo(t)
	saved := saveComplaint(t, repo, "product-1", "complainant-1", "broken", "Poland")

	found, err := repo.FindByProductAndComplainant(context.Background(), "product-1", "complainant-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)

	_, err = repo.FindByProductAndComplainant(context.Background(), "product-1", "someone-else")
	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestComplaintRepo_DuplicatePairRejected(t *testing.T) {
	repo := newTestRepo(t)
	saveComplaint(t, repo, "product-1", "complainant-1", "first", "Poland")

	_, err := repo.Save(context.Background(), domain.NewComplaint("product-1", "second", "complainant-1", "Germany"))

	assert.ErrorIs(t, err, domain.ErrDuplicateComplaint)
}

func TestComplaintRepo_Update(t *testing.T) {
	repo := newTestRepo(t)
	saved := saveComplaint(t, repo, "product-1", "complainant-1", "old", "Unknown")

	saved.EnrichCountry("Poland")
	saved.ApplyContentUpdate("new content")
	_, err := repo.Save(context.Background(), saved)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "new content", found.Content)
	assert.Equal(t, "Poland", found.Country)
	require.NotNil(t, found.UpdateDate)
}

func TestComplaintRepo_UpdateMissingRow(t *testing.T) {
	repo := newTestRepo(t)

	ghost := domain.ReconstructComplaint("missing", "p", "c", "content", "Poland", 1, time.Now().UTC(), nil)
	_, err := repo.Save(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestComplaintRepo_IncrementCounter(t *testing.T) {
	repo := newTestRepo(t)
	saved := saveComplaint(t, repo, "product-1", "complainant-1", "broken", "Poland")

	updated, err := repo.IncrementCounter(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Counter)

	updated, err = repo.IncrementCounter(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Counter)

	_, err = repo.IncrementCounter(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestComplaintRepo_FindByFilters(t *testing.T) {
	repo := newTestRepo(t)
	saveComplaint(t, repo, "product-1", "complainant-1", "a", "Poland")
	saveComplaint(t, repo, "product-1", "complainant-2", "b", "Germany")
	saveComplaint(t, repo, "product-2", "complainant-1", "c", "Poland")

	ctx := context.Background()

	t.Run("no filters returns everything", func(t *testing.T) {
		out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("by product", func(t *testing.T) {
		out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{ProductID: "product-1", Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("by complainant", func(t *testing.T) {
		out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{ComplainantID: "complainant-1", Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("filters combine as a conjunction", func(t *testing.T) {
		out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{
			ProductID:     "product-1",
			ComplainantID: "complainant-1",
			Page:          0,
			Size:          10,
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].Content)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{ProductID: "product-9", Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestComplaintRepo_FindByFilters_DateRange(t *testing.T) {
	repo := newTestRepo(t)
	saved := saveComplaint(t, repo, "product-1", "complainant-1", "a", "Poland")

	ctx := context.Background()
	before := saved.CreationDate.Add(-time.Hour)
	after := saved.CreationDate.Add(time.Hour)

	out, err := repo.FindByFilters(ctx, domain.ComplaintFilter{FromDate: &before, ToDate: &after, Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = repo.FindByFilters(ctx, domain.ComplaintFilter{FromDate: &after, Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = repo.FindByFilters(ctx, domain.ComplaintFilter{ToDate: &before, Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestComplaintRepo_FindByFilters_Pagination(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 5; i++ {
		saveComplaint(t, repo, "product-1", "complainant-"+string(rune('a'+i)), "content", "Poland")
	}

	ctx := context.Background()

	page0, err := repo.FindByFilters(ctx, domain.ComplaintFilter{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page0, 2)

	page2, err := repo.FindByFilters(ctx, domain.ComplaintFilter{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	page3, err := repo.FindByFilters(ctx, domain.ComplaintFilter{Page: 3, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page3)
}
