package services

import (
	"sort"
	"sync"
	"time"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driving"
	"github.com/redlinehq/redline/internal/geometry"
	"github.com/redlinehq/redline/internal/logger"
)

// Ensure ScrollBridge implements the interface.
var _ driving.ScrollBridge = (*ScrollBridge)(nil)

// HighlightDuration is how long the transient highlight decoration
// stays on an element brought into view. Cosmetic only.
const HighlightDuration = 2000 * time.Millisecond

// ScrollBridge is the registry connecting the annotation list and the
// viewer. It lives for the lifetime of the process but is constructed
// explicitly at the application root and injected, so tests can run
// isolated instances. Listeners must unregister on teardown; the
// bridge never collects stale callbacks itself.
type ScrollBridge struct {
	mu        sync.RWMutex
	listeners map[string]driving.ScrollListener
	container domain.PixelRect
	pages     []domain.PixelRect
	hasLayout bool
}

// NewScrollBridge creates an empty scroll bridge.
func NewScrollBridge() *ScrollBridge {
	return &ScrollBridge{
		listeners: make(map[string]driving.ScrollListener),
	}
}

// Register adds or replaces a listener under the given ID.
func (b *ScrollBridge) Register(id string, fn driving.ScrollListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[id] = fn
}

// Unregister removes the listener with the given ID. Unknown IDs are
// a no-op.
func (b *ScrollBridge) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, id)
}

// ScrollToPage fans out a position record for the given page.
func (b *ScrollBridge) ScrollToPage(page int) {
	b.publish(domain.ScrollPosition{PageNumber: page})
}

// ScrollToAnnotation fans out a position record targeting the
// annotation's page and overlay element.
func (b *ScrollBridge) ScrollToAnnotation(a *domain.Annotation) {
	if a == nil {
		return
	}
	pos := domain.ScrollPosition{
		PageNumber:   a.PageNumber,
		AnnotationID: a.ID,
		ElementID:    "annotation-" + a.ID,
	}
	if len(a.Rects) > 0 {
		pos.YOffset = a.Rects[0].Top
	}
	b.publish(pos)
}

// ScrollElementIntoView fans out a record carrying an element ID. The
// options are cosmetic hints consumed by the viewer adapter, which is
// also responsible for removing the highlight decoration after
// HighlightDuration.
func (b *ScrollBridge) ScrollElementIntoView(elementID string, _ domain.ScrollOptions) {
	b.publish(domain.ScrollPosition{PageNumber: -1, ElementID: elementID})
}

// SetPageLayout records the current container and page geometry.
func (b *ScrollBridge) SetPageLayout(container domain.PixelRect, pages []domain.PixelRect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.container = container
	b.pages = append([]domain.PixelRect(nil), pages...)
	b.hasLayout = true
}

// CurrentVisiblePage returns the 0-indexed page whose vertical center
// is closest to the container's, or -1 without layout.
func (b *ScrollBridge) CurrentVisiblePage() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.hasLayout {
		return -1
	}
	return geometry.CurrentVisiblePage(b.container, b.pages)
}

// publish invokes every listener with the position, synchronously and
// in stable ID order. A panicking listener is recovered and logged so
// one failing subscriber cannot block the rest.
func (b *ScrollBridge) publish(pos domain.ScrollPosition) {
	b.mu.RLock()
	ids := make([]string, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fns := make([]driving.ScrollListener, len(ids))
	for i, id := range ids {
		fns[i] = b.listeners[id]
	}
	b.mu.RUnlock()

	for i, fn := range fns {
		b.invoke(ids[i], fn, pos)
	}
}

// invoke runs one listener with panic isolation.
func (b *ScrollBridge) invoke(id string, fn driving.ScrollListener, pos domain.ScrollPosition) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scroll listener %s panicked: %v", id, r)
		}
	}()
	fn(pos)
}
