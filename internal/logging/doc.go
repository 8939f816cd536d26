// Package logging configures the application logger: a logrus instance with
// a compact console formatter that prefixes each line with a level glyph.
package logging
