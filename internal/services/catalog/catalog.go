package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/dictionary"
)

// Catalog is the immutable, ordered list of locations loaded at startup
type Catalog struct {
	locations []model.Location
	index     map[model.LocationID]int
}

// file is the on-disk configuration format
type file struct {
	Locations []model.Location `json:"locations"`
}

// New validates the given locations and builds a Catalog.
// Secret words are stored normalized.
func New(locations []model.Location) (*Catalog, error) {
	c := &Catalog{
		locations: make([]model.Location, 0, len(locations)),
		index:     make(map[model.LocationID]int, len(locations)),
	}
	for _, loc := range locations {
		if _, dup := c.index[loc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate location id %d", model.ErrInvalidCatalog, loc.ID)
		}
		loc.SecretWord = dictionary.Normalize(loc.SecretWord)
		if n := utf8.RuneCountInString(loc.SecretWord); n != model.WordLength {
			return nil, fmt.Errorf("%w: location %d secret word has %d letters", model.ErrInvalidCatalog, loc.ID, n)
		}
		c.index[loc.ID] = len(c.locations)
		c.locations = append(c.locations, loc)
	}
	return c, nil
}

// LoadFromFile reads a JSON catalog. A missing file yields an empty catalog.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil)
		}
		return nil, err
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrInvalidCatalog, path, err)
	}
	return New(f.Locations)
}

// Locations returns the catalog in configured order
func (c *Catalog) Locations() []model.Location {
	out := make([]model.Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// Get returns the location with the given id
func (c *Catalog) Get(id model.LocationID) (model.Location, error) {
	i, ok := c.index[id]
	if !ok {
		return model.Location{}, fmt.Errorf("%w: %d", model.ErrLocationNotFound, id)
	}
	return c.locations[i], nil
}

// Len returns the number of configured locations
func (c *Catalog) Len() int {
	return len(c.locations)
}
