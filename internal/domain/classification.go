// Package domain holds the types shared by the classifier, storage and API
// layers.
package domain

// Category names one of the four content kinds a clipboard sample can carry.
type Category string

// Categories, in the order they are evaluated and reported.
const (
	CategoryLink    Category = "link"
	CategoryDate    Category = "date"
	CategoryMath    Category = "math"
	CategoryAddress Category = "address"
)

// AllCategories lists every category in evaluation order.
var AllCategories = []Category{CategoryLink, CategoryDate, CategoryMath, CategoryAddress}

// ClassificationResult carries one independent verdict per category. Any
// combination of flags may be set, including none.
type ClassificationResult struct {
	Link    bool `json:"link"`
	Date    bool `json:"date"`
	Math    bool `json:"math"`
	Address bool `json:"address"`
}

// Set records the verdict for c. Unknown categories are ignored.
func (r *ClassificationResult) Set(c Category, v bool) {
	switch c {
	case CategoryLink:
		r.Link = v
	case CategoryDate:
		r.Date = v
	case CategoryMath:
		r.Math = v
	case CategoryAddress:
		r.Address = v
	}
}

// Has reports the verdict for c.
func (r ClassificationResult) Has(c Category) bool {
	switch c {
	case CategoryLink:
		return r.Link
	case CategoryDate:
		return r.Date
	case CategoryMath:
		return r.Math
	case CategoryAddress:
		return r.Address
	default:
		return false
	}
}

// Categories returns the positive categories in evaluation order.
func (r ClassificationResult) Categories() []Category {
	out := make([]Category, 0, len(AllCategories))
	for _, c := range AllCategories {
		if r.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Map renders the result as category name to verdict, the shape stored in
// request logs.
func (r ClassificationResult) Map() map[string]bool {
	m := make(map[string]bool, len(AllCategories))
	for _, c := range AllCategories {
		m[string(c)] = r.Has(c)
	}
	return m
}

// WantsLatex reports whether the sample should be routed to formula
// transcription: math content that is not merely a URL.
func (r ClassificationResult) WantsLatex() bool {
	return r.Math && !r.Link
}
