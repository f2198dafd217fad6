package domain

// Page addresses one slice of an ordered result set.
type Page struct {
	Index int
	Size  int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return p.Index * p.Size
}

// NewPage converts a from/size window into a page. The page index is from/size, so a
// from value that is not a multiple of size is rounded down to the page that contains it.
func NewPage(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, NewValidationError("invalid paging params: from must be >= 0 and size > 0")
	}
	return Page{Index: from / size, Size: size}, nil
}
