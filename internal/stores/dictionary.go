// Package stores holds the merchant dictionary: known store names mapped to
// spending categories, loaded once at startup and immutable afterwards.
package stores

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AndreasStokka/Kvittering/internal/model"
)

// Dictionary maps known merchant names to categories. Keys are stored as
// given in the resource; use Keys/Category with folded lookups.
type Dictionary struct {
	entries map[string]model.Category
}

// storeFile is the JSON shape of the store_categories resource.
type storeFile struct {
	Stores map[string]string `json:"stores"`
}

// Load reads a store dictionary from a JSON resource. A missing or
// malformed file falls back to the built-in table, matching how the app
// behaves when the bundled resource cannot be read.
func Load(path string) *Dictionary {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fallback()
	}
	d, err := Parse(data)
	if err != nil {
		return Fallback()
	}
	return d
}

// Parse builds a Dictionary from raw JSON. Entries with category labels
// outside the current set are dropped rather than guessed at.
func Parse(data []byte) (*Dictionary, error) {
	var sf storeFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing store dictionary: %w", err)
	}
	if sf.Stores == nil {
		return nil, fmt.Errorf("store dictionary missing %q object", "stores")
	}
	entries := make(map[string]model.Category, len(sf.Stores))
	for key, label := range sf.Stores {
		if c, ok := model.ParseCategory(label); ok {
			entries[key] = c
		}
	}
	return &Dictionary{entries: entries}, nil
}

// Fallback returns the built-in dictionary used when no resource is
// available.
func Fallback() *Dictionary {
	return &Dictionary{entries: map[string]model.Category{
		"rema":        model.CategoryGroceries,
		"rema 1000":   model.CategoryGroceries,
		"kiwi":        model.CategoryGroceries,
		"coop":        model.CategoryGroceries,
		"extra":       model.CategoryGroceries,
		"meny":        model.CategoryGroceries,
		"bunnpris":    model.CategoryGroceries,
		"spar":        model.CategoryGroceries,
		"joker":       model.CategoryGroceries,
		"prix":        model.CategoryGroceries,
		"sport 1":     model.CategorySports,
		"xxl":         model.CategorySports,
		"intersport":  model.CategorySports,
		"g-sport":     model.CategorySports,
		"anton sport": model.CategorySports,
		"elkjøp":      model.CategoryElectronics,
		"power":       model.CategoryElectronics,
		"komplett":    model.CategoryElectronics,
		"netonnet":    model.CategoryElectronics,
		"byggmax":     model.CategoryConstruction,
		"jula":        model.CategoryConstruction,
		"clas ohlson": model.CategoryConstruction,
		"jernia":      model.CategoryConstruction,
		"maxbo":       model.CategoryConstruction,
		"montér":      model.CategoryConstruction,
		"europris":    model.CategoryOther,
		"h&m":         model.CategoryClothes,
		"cubus":       model.CategoryClothes,
		"dressmann":   model.CategoryClothes,
		"bikbok":      model.CategoryClothes,
		"carlings":    model.CategoryClothes,
		"volt":        model.CategoryClothes,
		"apotek 1":    model.CategoryOther,
		"boots":       model.CategoryOther,
		"vitus":       model.CategoryOther,
		"vinmonopolet": model.CategoryOther,
		"circle k":    model.CategoryOther,
		"esso":        model.CategoryOther,
		"shell":       model.CategoryOther,
		"uno-x":       model.CategoryOther,
	}}
}

// Keys returns every dictionary key, sorted longest first so more specific
// names are tried before generic prefixes, then alphabetically for
// determinism.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Category returns the category for a key as it appears in Keys.
func (d *Dictionary) Category(key string) (model.Category, bool) {
	c, ok := d.entries[key]
	return c, ok
}

// Len reports the number of known stores.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
