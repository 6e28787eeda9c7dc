package selector

import (
	"github.com/orgball2608/harrow-downloader/internal/domain"
	"github.com/orgball2608/harrow-downloader/internal/filename"
)

// Select decides which variants of one post are archived. A post carrying any
// photo keeps every variant in input order. Otherwise the single variant with
// the strictly greatest bitrate wins, the first one on ties, with a missing
// bitrate counting as 0.
func Select(variants []*domain.MediaVariant) []*domain.MediaVariant {
	if len(variants) == 0 {
		return nil
	}

	for _, v := range variants {
		if v.IsPhoto() {
			selected := make([]*domain.MediaVariant, len(variants))
			copy(selected, variants)
			return selected
		}
	}

	best := variants[0]
	for _, v := range variants[1:] {
		if v.BitrateOrZero() > best.BitrateOrZero() {
			best = v
		}
	}
	return []*domain.MediaVariant{best}
}

// Item is a selected variant with its local filename.
type Item struct {
	Variant  *domain.MediaVariant
	Filename string
}

// Unresolved is a selected variant whose URL yields no filename.
type Unresolved struct {
	Variant *domain.MediaVariant
	Err     error
}

// Plan is the ordered set of files one post contributes to canonical
// storage. Archiving and view generation both derive it from the same
// catalog rows so the names always agree.
type Plan struct {
	Items      []Item
	Unresolved []Unresolved
}

// NewPlan selects variants and resolves their filenames in selector order.
func NewPlan(variants []*domain.MediaVariant) Plan {
	var plan Plan
	for _, v := range Select(variants) {
		name, err := filename.FromURL(v.URL)
		if err != nil {
			plan.Unresolved = append(plan.Unresolved, Unresolved{Variant: v, Err: err})
			continue
		}
		plan.Items = append(plan.Items, Item{Variant: v, Filename: name})
	}
	return plan
}

// Filenames returns the media filenames in selector order.
func (p Plan) Filenames() []string {
	names := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		names = append(names, item.Filename)
	}
	return names
}

// MetadataFilename returns the companion metadata filename, or "" when no
// filename resolved.
func (p Plan) MetadataFilename() string {
	if len(p.Items) == 0 {
		return ""
	}
	return filename.Metadata(p.Filenames())
}

// AllFilenames returns the media filenames followed by the metadata filename.
func (p Plan) AllFilenames() []string {
	names := p.Filenames()
	if meta := p.MetadataFilename(); meta != "" {
		names = append(names, meta)
	}
	return names
}
