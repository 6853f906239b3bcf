package prompt

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// Item is one pickable agent.
type Item struct {
	ID       string
	Name     string
	Category string
	// Preview is shown beside the list while the item is highlighted.
	Preview string
}

// Picker chooses agents interactively, category first.
type Picker interface {
	// PickCategory returns one of categories.
	PickCategory(categories []string) (string, error)
	// PickItems returns the IDs of the chosen items, at least one.
	PickItems(prompt string, items []Item) ([]string, error)
}

type findFunc func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)

type findMultiFunc func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error)

// FuzzyPicker is a Picker backed by a terminal fuzzy finder.
type FuzzyPicker struct {
	find      findFunc
	findMulti findMultiFunc
}

// NewFuzzyPicker returns a Picker that draws on the controlling terminal.
func NewFuzzyPicker() *FuzzyPicker {
	return &FuzzyPicker{
		find:      fuzzyfinder.Find,
		findMulti: fuzzyfinder.FindMulti,
	}
}

// PickCategory implements Picker.
func (p *FuzzyPicker) PickCategory(categories []string) (string, error) {
	if len(categories) == 0 {
		return "", ErrNoOptions
	}
	if len(categories) == 1 {
		return categories[0], nil
	}

	idx, err := p.find(
		categories,
		func(i int) string { return categories[i] },
		fuzzyfinder.WithPromptString("category> "),
	)
	if err != nil {
		return "", finderError(err)
	}
	return categories[idx], nil
}

// PickItems implements Picker. Tab marks several items.
func (p *FuzzyPicker) PickItems(prompt string, items []Item) ([]string, error) {
	if len(items) == 0 {
		return nil, ErrNoOptions
	}

	idxs, err := p.findMulti(
		items,
		func(i int) string {
			return fmt.Sprintf("%s  %s", items[i].ID, items[i].Category)
		},
		fuzzyfinder.WithPromptString(prompt+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return preview(items[i])
		}),
	)
	if err != nil {
		return nil, finderError(err)
	}
	if len(idxs) == 0 {
		return nil, ErrSelectionCancelled
	}

	ids := make([]string, 0, len(idxs))
	for _, i := range idxs {
		ids = append(ids, items[i].ID)
	}
	return ids, nil
}

func preview(it Item) string {
	var sb strings.Builder
	sb.WriteString(it.Name)
	sb.WriteString("\n")
	if it.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", it.Category)
	}
	if it.Preview != "" {
		sb.WriteString("\n")
		sb.WriteString(it.Preview)
	}
	return sb.String()
}

func finderError(err error) error {
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return ErrSelectionCancelled
	}
	return errors.Wrap(err, "interactive selection failed")
}
