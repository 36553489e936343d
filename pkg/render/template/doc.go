// Package template defines the seam HTML renderers use to execute named
// templates. The gotemplate subpackage implements it on pongo2.
package template
