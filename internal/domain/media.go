package domain

// MediaTypePhoto is the media type of independent images. Variants without
// a type are treated as photos.
const MediaTypePhoto = "photo"

// MediaVariant is one downloadable asset belonging to a post. Photo variants
// are independent images, other types are bitrate-ranked renditions of the
// same asset.
type MediaVariant struct {
	ID      string
	PostID  string
	URL     string
	AltText string
	Type    string
	Bitrate *int64 // nil when the catalog has no bitrate
}

// IsPhoto reports whether the variant is an independent image.
func (m *MediaVariant) IsPhoto() bool {
	return m.Type == "" || m.Type == MediaTypePhoto
}

// BitrateOrZero returns the bitrate, with a missing bitrate counting as 0.
func (m *MediaVariant) BitrateOrZero() int64 {
	if m.Bitrate == nil {
		return 0
	}
	return *m.Bitrate
}
