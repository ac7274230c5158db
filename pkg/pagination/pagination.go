package pagination

// Page-numbered pagination for the storefront list endpoints. The SPA walks
// pages with page/per_page and renders the returned metadata directly.

const (
	// DefaultPerPage is the standard page size when per_page is not provided.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Normalize clamps the params to sane bounds.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	norm := Normalize(p)
	return (norm.Page - 1) * norm.PerPage
}

// BuildMeta derives the metadata block from a total row count.
func BuildMeta(p Params, total int64) Meta {
	norm := Normalize(p)
	totalPages := int((total + int64(norm.PerPage) - 1) / int64(norm.PerPage))
	return Meta{
		Page:       norm.Page,
		PerPage:    norm.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    norm.Page < totalPages,
		HasPrev:    norm.Page > 1 && totalPages > 0,
	}
}
