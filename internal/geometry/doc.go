// Package geometry converts pixel-space text selections into
// normalized page-relative rectangles and back.
//
// Everything here is a pure function of its inputs. Normalization
// happens at selection time, never cached across renders, so the
// results survive zoom and device-pixel-ratio changes.
package geometry
