package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

func sampleProperty() domain.NewProperty {
	return domain.NewProperty{
		Title:       "Casa de Praia",
		Description: "Pé na areia",
		Location:    "Ubatuba, SP",
		Price:       "R$ 1.200.000",
		Bedrooms:    3,
		Bathrooms:   2,
		Area:        180,
		Images:      []string{"a.jpg", "b.jpg", "c.jpg"},
	}
}

func TestStore_CreateUserDefaults(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, domain.NewUser{Email: "ana@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleClient, u.Role)
	assert.Equal(t, "", u.Name)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByEmail(ctx, "ANA@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_CreateUserRejectsDuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, domain.NewUser{Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, domain.NewUser{Email: "dup@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_GetUserUnknown(t *testing.T) {
	_, err := NewStore().GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_PropertyLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p, err := s.CreateProperty(ctx, sampleProperty())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Views)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, p.Images)

	title := "Casa de Praia Reformada"
	updated, err := s.UpdateProperty(ctx, p.ID, domain.PropertyPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, p.Location, updated.Location)
	assert.Equal(t, p.Images, updated.Images, "images must survive an update that does not touch them")

	ok, err := s.DeleteProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetProperty(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	ok, err = s.DeleteProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_UpdateUnknownProperty(t *testing.T) {
	title := "x"
	_, err := NewStore().UpdateProperty(context.Background(), "missing", domain.PropertyPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestStore_ReturnedPropertyIsACopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p, err := s.CreateProperty(ctx, sampleProperty())
	require.NoError(t, err)
	p.Images[0] = "mutated.jpg"
	p.Views = 99

	got, err := s.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got.Images[0])
	assert.Equal(t, 0, got.Views)
}

func TestStore_GetAllPropertiesKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		p, err := s.CreateProperty(ctx, sampleProperty())
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	_, err := s.DeleteProperty(ctx, ids[2])
	require.NoError(t, err)

	all, err := s.GetAllProperties(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, p := range all {
		got = append(got, p.ID)
	}
	assert.Equal(t, []string{ids[0], ids[1], ids[3], ids[4]}, got)
}

func TestStore_IncrementPropertyViewsConcurrent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p, err := s.CreateProperty(ctx, sampleProperty())
	require.NoError(t, err)

	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.IncrementPropertyViews(ctx, p.ID)
		}()
	}
	wg.Wait()

	got, err := s.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.Views)
}

func TestStore_IncrementUnknownIsNoop(t *testing.T) {
	assert.NoError(t, NewStore().IncrementPropertyViews(context.Background(), "missing"))
}

func TestStore_Likes(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p1, _ := s.CreateProperty(ctx, sampleProperty())
	p2, _ := s.CreateProperty(ctx, sampleProperty())

	like, created, err := s.LikeProperty(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.LikeProperty(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, like.ID, again.ID)

	_, _, err = s.LikeProperty(ctx, "u1", p2.ID)
	require.NoError(t, err)
	_, _, err = s.LikeProperty(ctx, "u2", p2.ID)
	require.NoError(t, err)

	ids, err := s.GetUserLikedProperties(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p1.ID, p2.ID}, ids)

	liked, err := s.IsPropertyLikedByUser(ctx, "u2", p1.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	ok, err := s.UnlikeProperty(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.UnlikeProperty(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a property drops its likes
	_, err = s.DeleteProperty(ctx, p2.ID)
	require.NoError(t, err)
	ids, err = s.GetUserLikedProperties(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
