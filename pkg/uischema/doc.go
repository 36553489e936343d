// Package uischema loads the presentation overlay for the details form:
// labels, placeholders, input widgets, icons, and action button labels. The
// bundled YAML document reproduces the stock look; callers can supply their
// own filesystem to restyle the screens without touching the renderers.
package uischema
