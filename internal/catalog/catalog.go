// Package catalog holds the category content that secret words are drawn from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"traitor/internal/domain"
)

const (
	// MixID is the id of the generated category holding every other category's words
	MixID = "mix"

	// MixName is the display name of the mix category
	MixName = "Mix"
)

//go:embed categories.json
var defaultCategories []byte

// ErrInvalidCatalog is returned when category content fails validation
var ErrInvalidCatalog = errors.New("invalid catalog")

type catalogFile struct {
	Categories []domain.Category `json:"categories"`
}

// Catalog is an immutable, ordered set of categories. The mix category is
// always first.
type Catalog struct {
	categories []domain.Category
	index      map[string]int
}

// New validates categories and prepends the mix category
func New(categories []domain.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}

	all := make([]domain.Category, 0, len(categories)+1)
	all = append(all, domain.Category{ID: MixID, Name: MixName})
	index := map[string]int{MixID: 0}

	for _, c := range categories {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)

		if c.ID == "" {
			return nil, fmt.Errorf("%w: category without id", ErrInvalidCatalog)
		}
		if c.ID == MixID {
			return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidCatalog, MixID)
		}
		if _, dup := index[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, c.ID)
		}
		if c.Name == "" {
			c.Name = c.ID
		}

		words := make([]domain.Word, 0, len(c.Words))
		for _, w := range c.Words {
			w.Term = strings.TrimSpace(w.Term)
			if w.Term == "" {
				return nil, fmt.Errorf("%w: empty term in category %q", ErrInvalidCatalog, c.ID)
			}
			words = append(words, w)
		}
		c.Words = words

		index[c.ID] = len(all)
		all = append(all, c)
	}

	all[0].Words = mixWords(all[1:])

	return &Catalog{
		categories: all,
		index:      index,
	}, nil
}

// mixWords is the union of all category words, first occurrence of a term wins
func mixWords(categories []domain.Category) []domain.Word {
	seen := make(map[string]struct{})
	words := make([]domain.Word, 0)
	for _, c := range categories {
		for _, w := range c.Words {
			if _, ok := seen[w.Term]; ok {
				continue
			}
			seen[w.Term] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}

// Parse decodes catalog JSON
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(file.Categories)
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCategories)
}

// Load reads a catalog from path, or returns the embedded one when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return Parse(data)
}

// Categories returns a copy of all categories, mix first
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	for i, cat := range c.categories {
		words := make([]domain.Word, len(cat.Words))
		copy(words, cat.Words)
		cat.Words = words
		out[i] = cat
	}
	return out
}

// Summaries lists categories without their words
func (c *Catalog) Summaries() []domain.CategorySummary {
	out := make([]domain.CategorySummary, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Summary())
	}
	return out
}

// IDs returns every category id in display order, mix first
func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.ID)
	}
	return out
}

// DefaultSelection is the category selection a new table starts with
func (c *Catalog) DefaultSelection() []string {
	return []string{MixID}
}

// Has reports whether id names a category in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// CheckIDs returns domain.ErrUnknownCategory for the first id not in the catalog
func (c *Catalog) CheckIDs(ids []string) error {
	for _, id := range ids {
		if !c.Has(id) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, id)
		}
	}
	return nil
}

// Len returns the number of categories, mix included
func (c *Catalog) Len() int {
	return len(c.categories)
}
