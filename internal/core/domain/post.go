package domain

import "time"

type Lang string

const (
	LangPersian Lang = "fa"
	LangEnglish Lang = "en"
)

// Post is a content summary as returned by the CMS list endpoint.
// The pipeline only relies on ID being stable and unique; the rest of the
// fields are passed through for display.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Lang        Lang      `json:"lang"`
	PublishedAt time.Time `json:"publishedAt"`
}
