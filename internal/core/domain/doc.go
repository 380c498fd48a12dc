// Package domain defines the core business entities for Redline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A note or highlight anchored to a region of a page
//   - Rect: A normalized page-relative bounding box
//   - Selection: A captured text selection in pixel space
//   - ScrollPosition: A viewer position record for the scroll bridge
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
