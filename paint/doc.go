// Package paint defines the drawing surface the engine renders through.
//
// The engine never touches pixels: it issues a fixed sequence of Painter
// calls per frame (Begin, Backdrop, edges, signals, nodes, End). Painters
// translate those calls for a concrete surface: raster images
// (paint/raster), terminal cells (tui) or an in-memory Recorder used by
// tests.
//
// Coordinates are logical pixels; painters apply their own device-pixel
// ratio. Colours carry straight (non-premultiplied) alpha in [0,1].
package paint
