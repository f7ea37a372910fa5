package slug_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linemk/shop-online-api/internal/lib/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// takenSet - фиктивное хранилище занятых слагов
type takenSet map[string]bool

func (s takenSet) exists(_ context.Context, candidate string) (bool, error) {
	return s[candidate], nil
}

func TestBase(t *testing.T) {
	base, err := slug.Base("My Shop", "Winter Hats!")
	require.NoError(t, err)
	assert.Equal(t, "my-shop-winter-hats", base)

	base, err = slug.Base("Shop A")
	require.NoError(t, err)
	assert.Equal(t, "shop-a", base)
}

func TestBase_Empty(t *testing.T) {
	_, err := slug.Base("!!!", "   ")
	assert.ErrorIs(t, err, slug.ErrEmptySlug)
}

func TestUnique_SameNameTwice(t *testing.T) {
	ctx := context.Background()
	taken := takenSet{}

	first, err := slug.Generate(ctx, taken.exists, "A")
	require.NoError(t, err)
	taken[first] = true

	second, err := slug.Generate(ctx, taken.exists, "A")
	require.NoError(t, err)

	assert.Equal(t, "a", first)
	assert.Equal(t, "a-1", second)
}

func TestUnique_SuffixIsNotStacked(t *testing.T) {
	taken := takenSet{"shop-hat": true, "shop-hat-1": true, "shop-hat-2": true}

	got, err := slug.Unique(context.Background(), "shop-hat", taken.exists)
	require.NoError(t, err)
	assert.Equal(t, "shop-hat-3", got)
}

func TestUnique_ExistsError(t *testing.T) {
	failing := func(context.Context, string) (bool, error) {
		return false, errors.New("db error")
	}

	_, err := slug.Unique(context.Background(), "a", failing)
	assert.Error(t, err)
}
