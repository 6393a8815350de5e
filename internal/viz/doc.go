// Package viz draws particles into the terminal.
//
// The package provides:
//
//   - [Canvas]: Braille-based pixel canvas that implements the render
//     surface and drawing context
//   - [Theme]: snow and confetti colors, with 5 built-in schemes
//
// # Pixels
//
// Every terminal cell holds a 2x4 block of dots, so a canvas of w columns
// and h rows is a 2w by 4h pixel surface. A cell takes the color of the last
// dot drawn into it, blended towards the theme background by its alpha.
package viz
