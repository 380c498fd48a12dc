package domain

// Rect is a normalized bounding box expressed as fractions of page
// width and height. All coordinates lie in [0,1], which makes the
// geometry independent of zoom level and device pixel ratio.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalized reports whether every coordinate lies in [0,1] and the
// rect does not extend past the page edge.
func (r Rect) Normalized() bool {
	inUnit := func(v float64) bool { return v >= 0 && v <= 1 }
	return inUnit(r.Top) && inUnit(r.Left) &&
		inUnit(r.Width) && inUnit(r.Height) &&
		r.Top+r.Height <= 1+epsilon && r.Left+r.Width <= 1+epsilon
}

// epsilon absorbs floating-point drift from pixel division.
const epsilon = 1e-9

// PixelRect is a bounding box in CSS pixel space, as reported by the
// rendering surface for page containers and selection client rects.
type PixelRect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the rect has no area.
func (r PixelRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies entirely within r.
func (r PixelRect) Contains(other PixelRect) bool {
	return other.Top >= r.Top-epsilon &&
		other.Left >= r.Left-epsilon &&
		other.Top+other.Height <= r.Top+r.Height+epsilon &&
		other.Left+other.Width <= r.Left+r.Width+epsilon
}

// VerticalCenter returns the y coordinate of the rect's center.
func (r PixelRect) VerticalCenter() float64 {
	return r.Top + r.Height/2
}

// Selection is a captured text selection scoped to one page, in the
// pixel space of the rendering surface at capture time.
type Selection struct {
	// PageNumber is the 0-indexed page the selection belongs to.
	PageNumber int `json:"pageNumber"`

	// Text is the selected text.
	Text string `json:"text"`

	// ClientRects are the per-line-fragment pixel rectangles of the
	// selection range.
	ClientRects []PixelRect `json:"clientRects"`

	// ContainedInPage is false when the selection's common ancestor
	// lies outside the target page element (spans another page or
	// non-page chrome). Such selections never produce geometry.
	ContainedInPage bool `json:"containedInPage"`
}

// Collapsed reports whether the selection has no visible extent.
func (s *Selection) Collapsed() bool {
	if len(s.ClientRects) == 0 {
		return true
	}
	for _, r := range s.ClientRects {
		if !r.Empty() {
			return false
		}
	}
	return true
}
