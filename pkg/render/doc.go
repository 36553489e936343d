// Package render defines the contract shared by document renderers and a
// registry for looking them up by name. Renderers consume the block sequence
// produced by the layout package and return encoded bytes.
package render
