package document

// PageSize is a named page dimension in points (72 per inch).
type PageSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Preset page sizes.
var (
	PageA4      = PageSize{Name: "A4", Width: 595, Height: 842}
	PageLetter  = PageSize{Name: "Letter", Width: 612, Height: 792}
	PageA3      = PageSize{Name: "A3", Width: 842, Height: 1191}
	PageA5      = PageSize{Name: "A5", Width: 420, Height: 595}
	PageTabloid = PageSize{Name: "Tabloid", Width: 792, Height: 1224}
	PageSquare  = PageSize{Name: "Square", Width: 512, Height: 512}
)

// CustomPageSize returns a custom page size.
func CustomPageSize(width, height float64) PageSize {
	return PageSize{Name: "Custom", Width: width, Height: height}
}

// PageSizePresets returns all preset sizes.
func PageSizePresets() []PageSize {
	return []PageSize{PageA4, PageLetter, PageA3, PageA5, PageTabloid, PageSquare}
}

// PageSizeByName looks up a preset by name.
func PageSizeByName(name string) (PageSize, bool) {
	for _, ps := range PageSizePresets() {
		if ps.Name == name {
			return ps, true
		}
	}
	return PageSize{}, false
}

// Size returns the dimensions as a Size.
func (ps PageSize) Size() Size {
	return Size{Width: ps.Width, Height: ps.Height}
}
