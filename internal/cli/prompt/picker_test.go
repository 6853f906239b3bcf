package prompt

import (
	"errors"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFind(idx int, err error) findFunc {
	return func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error) {
		return idx, err
	}
}

func stubFindMulti(idxs []int, err error) findMultiFunc {
	return func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error) {
		return idxs, err
	}
}

func TestFuzzyPicker_PickCategory(t *testing.T) {
	categories := []string{"development", "quality"}

	t.Run("selection", func(t *testing.T) {
		p := &FuzzyPicker{find: stubFind(1, nil)}
		got, err := p.PickCategory(categories)
		require.NoError(t, err)
		assert.Equal(t, "quality", got)
	})

	t.Run("single category skips finder", func(t *testing.T) {
		p := &FuzzyPicker{find: stubFind(0, errors.New("should not be called"))}
		got, err := p.PickCategory([]string{"quality"})
		require.NoError(t, err)
		assert.Equal(t, "quality", got)
	})

	t.Run("abort", func(t *testing.T) {
		p := &FuzzyPicker{find: stubFind(0, fuzzyfinder.ErrAbort)}
		_, err := p.PickCategory(categories)
		assert.ErrorIs(t, err, ErrSelectionCancelled)
	})

	t.Run("finder failure", func(t *testing.T) {
		p := &FuzzyPicker{find: stubFind(0, errors.New("no tty"))}
		_, err := p.PickCategory(categories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interactive selection failed: no tty")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewFuzzyPicker().PickCategory(nil)
		assert.ErrorIs(t, err, ErrNoOptions)
	})
}

func TestFuzzyPicker_PickItems(t *testing.T) {
	items := []Item{
		{ID: "blue-a", Name: "Blue A", Category: "quality"},
		{ID: "blue-b", Name: "Blue B", Category: "quality"},
		{ID: "blue-c", Name: "Blue C", Category: "quality"},
	}

	t.Run("multiple", func(t *testing.T) {
		p := &FuzzyPicker{findMulti: stubFindMulti([]int{2, 0}, nil)}
		got, err := p.PickItems("agents", items)
		require.NoError(t, err)
		assert.Equal(t, []string{"blue-c", "blue-a"}, got)
	})

	t.Run("nothing chosen", func(t *testing.T) {
		p := &FuzzyPicker{findMulti: stubFindMulti(nil, nil)}
		_, err := p.PickItems("agents", items)
		assert.ErrorIs(t, err, ErrSelectionCancelled)
	})

	t.Run("abort", func(t *testing.T) {
		p := &FuzzyPicker{findMulti: stubFindMulti(nil, fuzzyfinder.ErrAbort)}
		_, err := p.PickItems("agents", items)
		assert.ErrorIs(t, err, ErrSelectionCancelled)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewFuzzyPicker().PickItems("agents", nil)
		assert.ErrorIs(t, err, ErrNoOptions)
	})
}

func TestPreview(t *testing.T) {
	got := preview(Item{ID: "blue-a", Name: "Blue A", Category: "quality", Preview: "Reviews code."})
	assert.Equal(t, "Blue A\nCategory: quality\n\nReviews code.", got)
}
