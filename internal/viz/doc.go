// Package viz renders contours and reconstructions in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per character
//   - [Bounds]: shared plane-to-raster mapping, also used by SVG export
//   - [Sparkline]: one-line bar chart, used for coefficient spectra
package viz
