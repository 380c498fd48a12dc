package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/core/domain"
)

func TestScrollBridgeFanOut(t *testing.T) {
	bridge := NewScrollBridge()

	var first, second []domain.ScrollPosition
	bridge.Register("list", func(pos domain.ScrollPosition) { first = append(first, pos) })
	bridge.Register("viewer", func(pos domain.ScrollPosition) { second = append(second, pos) })

	bridge.ScrollToPage(4)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, 4, first[0].PageNumber)
	assert.Equal(t, second[0], first[0])
}

func TestScrollBridgeUnregister(t *testing.T) {
	bridge := NewScrollBridge()

	var calls int
	bridge.Register("list", func(domain.ScrollPosition) { calls++ })
	bridge.ScrollToPage(1)
	bridge.Unregister("list")
	bridge.Unregister("never-registered")
	bridge.ScrollToPage(2)

	assert.Equal(t, 1, calls)
}

func TestScrollBridgePanickingListenerIsolated(t *testing.T) {
	bridge := NewScrollBridge()

	var delivered []int
	bridge.Register("a-panics", func(domain.ScrollPosition) { panic("listener bug") })
	bridge.Register("b-sane", func(pos domain.ScrollPosition) { delivered = append(delivered, pos.PageNumber) })

	assert.NotPanics(t, func() { bridge.ScrollToPage(7) })
	assert.Equal(t, []int{7}, delivered)
}

func TestScrollBridgeScrollToAnnotation(t *testing.T) {
	bridge := NewScrollBridge()

	var got domain.ScrollPosition
	bridge.Register("viewer", func(pos domain.ScrollPosition) { got = pos })

	a := &domain.Annotation{
		ID:         "a1",
		PageNumber: 2,
		Rects:      []domain.Rect{{Top: 0.31, Left: 0.1, Width: 0.5, Height: 0.02}},
	}
	bridge.ScrollToAnnotation(a)

	assert.Equal(t, 2, got.PageNumber)
	assert.Equal(t, "a1", got.AnnotationID)
	assert.Equal(t, "annotation-a1", got.ElementID)
	assert.InDelta(t, 0.31, got.YOffset, 1e-9)

	bridge.ScrollToAnnotation(nil)
	assert.Equal(t, "a1", got.AnnotationID, "nil annotation publishes nothing")
}

func TestScrollBridgeScrollElementIntoView(t *testing.T) {
	bridge := NewScrollBridge()

	var got domain.ScrollPosition
	bridge.Register("viewer", func(pos domain.ScrollPosition) { got = pos })

	bridge.ScrollElementIntoView("annotation-a1", domain.ScrollOptions{Smooth: true, Focus: true})
	assert.Equal(t, "annotation-a1", got.ElementID)
	assert.Equal(t, -1, got.PageNumber)
}

func TestScrollBridgeCurrentVisiblePage(t *testing.T) {
	bridge := NewScrollBridge()
	assert.Equal(t, -1, bridge.CurrentVisiblePage(), "no layout yet")

	container := domain.PixelRect{Top: 0, Left: 0, Width: 800, Height: 1000}
	pages := []domain.PixelRect{
		{Top: -900, Left: 0, Width: 800, Height: 1000},
		{Top: 110, Left: 0, Width: 800, Height: 1000},
		{Top: 1120, Left: 0, Width: 800, Height: 1000},
	}
	bridge.SetPageLayout(container, pages)
	assert.Equal(t, 1, bridge.CurrentVisiblePage())
}
