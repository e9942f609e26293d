// Package imaging provides the image-side support for Haar feature
// extraction: loading and caching source images, extracting detection
// windows, and rendering feature overlays for inspection.
//
// # Coordinate System
//
// Windows are addressed by their top-left corner (row, col) and their
// height/width in pixels, matching the (row, col) convention of the haar
// package: 0-based, origin at the top left, rows increasing downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining operations are
// stateless and may run concurrently on different images.
//
// # Error Handling
//
// Functions return errors for windows outside the image bounds, unreadable
// or undecodable files, and encoding failures; none of them panic.
package imaging
