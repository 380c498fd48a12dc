package driving

import "github.com/redlinehq/redline/internal/core/domain"

// ScrollListener receives position records fanned out by the bridge.
type ScrollListener func(pos domain.ScrollPosition)

// ScrollBridge connects the annotation list and the viewer without a
// shared ancestor. It is constructed once at application root and
// injected into both sides; it is never a hidden package singleton.
//
// Registration is idempotent: registering an existing listener ID
// replaces its callback, and unregistering an unknown ID is a no-op.
// Listeners must unregister on teardown; the bridge never collects
// stale callbacks on its own.
type ScrollBridge interface {
	// Register adds or replaces a listener under the given ID.
	Register(id string, fn ScrollListener)

	// Unregister removes the listener with the given ID.
	Unregister(id string)

	// ScrollToPage fans out a position record for the given page to
	// every listener. A panicking listener is recovered and logged;
	// the rest still run.
	ScrollToPage(page int)

	// ScrollToAnnotation fans out a position record targeting the
	// annotation's page and element.
	ScrollToAnnotation(a *domain.Annotation)

	// ScrollElementIntoView fans out a record carrying an element ID.
	// The options are cosmetic hints for the viewer adapter.
	ScrollElementIntoView(elementID string, opts domain.ScrollOptions)

	// SetPageLayout records the current container and page geometry
	// for visible-page queries.
	SetPageLayout(container domain.PixelRect, pages []domain.PixelRect)

	// CurrentVisiblePage returns the 0-indexed page closest to the
	// container's vertical center, or -1 without layout.
	CurrentVisiblePage() int
}
