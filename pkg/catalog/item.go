// Package catalog holds the immutable list of herb/model records shown by the
// viewer and knows how to load it from a static document.
package catalog

import "strings"

// Image is one gallery tile for an item.
type Image struct {
	Src     string `json:"src"`
	Caption string `json:"caption,omitempty"`
}

// Quiz is the optional multiple-choice question attached to an item.
type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Item is a single catalog record. Items are never mutated after load.
type Item struct {
	ID                string   `json:"id"`
	NameJa            string   `json:"nameJa,omitempty"`
	LatinName         string   `json:"latinName,omitempty"`
	SourcePlantLatin  string   `json:"sourcePlantLatin,omitempty"`
	SourcePlantAuthor string   `json:"sourcePlantAuthor,omitempty"`
	SourcePlant       string   `json:"sourcePlant,omitempty"`
	Part              string   `json:"part,omitempty"`
	Extra             string   `json:"extra,omitempty"`
	Description       string   `json:"description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	Images            []Image  `json:"images,omitempty"`
	FileURL           string   `json:"fileUrl,omitempty"`
	Quiz              *Quiz    `json:"quiz,omitempty"`
}

// HasTag reports whether the item carries tag exactly.
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText is the case-folded haystack keyword search runs against.
func (i *Item) SearchText() string {
	return strings.ToLower(i.NameJa + " " + i.LatinName + " " + i.ID)
}

// SourcePlantKind describes which source-plant representation an item uses.
type SourcePlantKind int

const (
	// SourcePlantNone means no source-plant information is present.
	SourcePlantNone SourcePlantKind = iota
	// SourcePlantSplit means the binomial and author are stored separately.
	SourcePlantSplit
	// SourcePlantLegacy means only the unsplit legacy string is present.
	SourcePlantLegacy
)

// SourcePlantLine is the source-plant information resolved by priority:
// split latin/author first, then the legacy string.
type SourcePlantLine struct {
	Kind   SourcePlantKind
	Latin  string
	Author string
	Legacy string
}

// Plant resolves the source-plant line for display.
func (i *Item) Plant() SourcePlantLine {
	if i.SourcePlantLatin != "" || i.SourcePlantAuthor != "" {
		return SourcePlantLine{
			Kind:   SourcePlantSplit,
			Latin:  i.SourcePlantLatin,
			Author: i.SourcePlantAuthor,
		}
	}
	if i.SourcePlant != "" {
		return SourcePlantLine{Kind: SourcePlantLegacy, Legacy: i.SourcePlant}
	}
	return SourcePlantLine{Kind: SourcePlantNone}
}

// String renders the line without styling.
func (l SourcePlantLine) String() string {
	switch l.Kind {
	case SourcePlantSplit:
		return strings.TrimSpace(l.Latin + " " + l.Author)
	case SourcePlantLegacy:
		return l.Legacy
	default:
		return "-"
	}
}
