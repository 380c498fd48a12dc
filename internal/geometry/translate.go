package geometry

import (
	"math"

	"github.com/redlinehq/redline/internal/core/domain"
)

// Translate converts a captured selection into normalized rectangles
// relative to the given page bounding box. Returns nil when the
// selection is collapsed, not contained in the page, or the page box
// has no area. One rect is produced per non-empty client rect.
func Translate(sel domain.Selection, page domain.PixelRect) []domain.Rect {
	if page.Empty() {
		return nil
	}
	if !sel.ContainedInPage || sel.Collapsed() {
		return nil
	}

	rects := make([]domain.Rect, 0, len(sel.ClientRects))
	for _, cr := range sel.ClientRects {
		if cr.Empty() {
			continue
		}
		rects = append(rects, domain.Rect{
			Top:    clamp((cr.Top - page.Top) / page.Height),
			Left:   clamp((cr.Left - page.Left) / page.Width),
			Width:  clamp(cr.Width / page.Width),
			Height: clamp(cr.Height / page.Height),
		})
	}
	if len(rects) == 0 {
		return nil
	}
	return rects
}

// Denormalize maps a normalized rect back into the pixel space of the
// given page box. Inverse of Translate for rects within the page.
func Denormalize(r domain.Rect, page domain.PixelRect) domain.PixelRect {
	return domain.PixelRect{
		Top:    r.Top*page.Height + page.Top,
		Left:   r.Left*page.Width + page.Left,
		Width:  r.Width * page.Width,
		Height: r.Height * page.Height,
	}
}

// AnchorPoint returns the normalized bottom-right corner of the last
// rect, where the selection affordance is anchored. ok is false when
// there are no rects.
func AnchorPoint(rects []domain.Rect) (x, y float64, ok bool) {
	if len(rects) == 0 {
		return 0, 0, false
	}
	last := rects[len(rects)-1]
	return clamp(last.Left + last.Width), clamp(last.Top + last.Height), true
}

// CurrentVisiblePage returns the index of the page whose vertical
// center is closest to the container's vertical center. Ties break to
// the earlier index, matching document order. Returns -1 when pages is
// empty.
func CurrentVisiblePage(container domain.PixelRect, pages []domain.PixelRect) int {
	if len(pages) == 0 {
		return -1
	}
	center := container.VerticalCenter()
	best := 0
	bestDist := math.Abs(pages[0].VerticalCenter() - center)
	for i := 1; i < len(pages); i++ {
		d := math.Abs(pages[i].VerticalCenter() - center)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// clamp pins v into [0,1]. Pixel division can drift a hair outside the
// unit range; the domain contract requires exact containment.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
