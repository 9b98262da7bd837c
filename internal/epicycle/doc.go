// Package epicycle decomposes a Fourier series into a chain of rotating
// vectors for animation.
//
//   - [Composer]: interleaves c_0, c_1, c_-1, ..., c_N, c_-N and chains them
//   - [TracedPath]: append-only list of chain tips, one per frame
//   - [Animation]: one run over uniformly spaced frame times
//
// Frames must be produced in increasing time order; the traced path is the
// only state carried from one frame to the next.
package epicycle
