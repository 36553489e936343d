// Package layout turns a validated personal-details record into an ordered
// list of positioned text blocks for a single A4 page.
//
// Coordinates are in millimetres with the origin at the top-left corner; the
// Y value of a text block is its baseline. The engine never measures text
// itself: paragraph wrapping is delegated to a TextWrapper supplied by the
// output renderer so the wrapped lines always match what will be drawn.
package layout
