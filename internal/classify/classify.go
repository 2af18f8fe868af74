// Package classify suggests a spending category for a merchant name, using
// the store dictionary first and ordered keyword fallbacks second.
package classify

import (
	"strings"

	"github.com/AndreasStokka/Kvittering/internal/match"
	"github.com/AndreasStokka/Kvittering/internal/model"
	"github.com/AndreasStokka/Kvittering/internal/stores"
	"github.com/AndreasStokka/Kvittering/internal/textnorm"
)

// Classifier maps merchant text to a Category.
type Classifier struct {
	dict      *stores.Dictionary
	threshold float64
}

// NewClassifier creates a Classifier sharing the process-wide dictionary.
func NewClassifier(dict *stores.Dictionary, threshold float64) *Classifier {
	return &Classifier{dict: dict, threshold: threshold}
}

// keywordRule associates a substring with a category. Rules are checked in
// order; the first hit wins.
type keywordRule struct {
	keyword  string
	category model.Category
}

var keywordRules = []keywordRule{
	{"apotek", model.CategoryOther},
	{"mat", model.CategoryGroceries},
	{"dagligvare", model.CategoryGroceries},
	{"supermarked", model.CategoryGroceries},
	{"cafe", model.CategoryGroceries},
	{"kafé", model.CategoryGroceries},
	{"elektronikk", model.CategoryElectronics},
	{"elektronik", model.CategoryElectronics},
	{"data", model.CategoryElectronics},
	{"pc", model.CategoryElectronics},
	{"mobil", model.CategoryElectronics},
	{"sport", model.CategorySports},
	{"idrett", model.CategorySports},
	{"klær", model.CategoryClothes},
	{"dress", model.CategoryClothes},
	{"mote", model.CategoryClothes},
	{"bygg", model.CategoryConstruction},
	{"anlegg", model.CategoryConstruction},
	{"hage", model.CategoryConstruction},
	{"jernia", model.CategoryConstruction},
	{"maxbo", model.CategoryConstruction},
	{"biltema", model.CategoryConstruction},
	{"mekonomen", model.CategoryConstruction},
}

// Suggest returns the category for merchantText. Empty input is Other.
func (c *Classifier) Suggest(merchantText string) model.Category {
	if strings.TrimSpace(merchantText) == "" {
		return model.CategoryOther
	}

	normalized := textnorm.FoldKey(merchantText)

	if category, ok := c.dictionaryMatch(normalized); ok {
		return category
	}

	for _, rule := range keywordRules {
		if strings.Contains(normalized, textnorm.FoldKey(rule.keyword)) {
			return rule.category
		}
	}

	return model.CategoryOther
}

// dictionaryMatch applies the matcher's exact/fuzzy/substring strategies
// directly against the key-to-category table. Keys arrive longest first, so
// a specific chain name outranks a shorter generic prefix.
func (c *Classifier) dictionaryMatch(normalized string) (model.Category, bool) {
	keys := c.dict.Keys()

	for _, key := range keys {
		if normalized == textnorm.FoldKey(key) {
			return c.category(key)
		}
	}

	var bestKey string
	bestScore := c.threshold
	for _, key := range keys {
		score := match.Similarity(normalized, textnorm.FoldKey(key))
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestKey != "" {
		return c.category(bestKey)
	}

	for _, key := range keys {
		keyNorm := textnorm.FoldKey(key)
		if strings.Contains(normalized, keyNorm) || strings.Contains(keyNorm, normalized) {
			return c.category(key)
		}
	}

	return model.CategoryOther, false
}

func (c *Classifier) category(key string) (model.Category, bool) {
	category, ok := c.dict.Category(key)
	return category, ok
}
