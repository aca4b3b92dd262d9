package models

// Component is one catalog entry. Price is in major currency units; zero (or
// a JSON null) marks the component free. Code carries the source text and is
// only present when the backend considers the caller authorized to see it.
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Code        string `json:"code,omitempty"`
}

// Free reports whether the component requires no purchase.
func (c Component) Free() bool {
	return c.Price <= 0
}
