// Package capture turns raw change notifications on watched content
// regions into debounced snippet saves. Each region debounces
// independently: rapid edits within the quiet window collapse into one
// save carrying the content of the last edit. The file-backed source
// in fswatch.go feeds the capture from filesystem events, but any
// caller able to say "region X changed, new content is Y" can drive
// it through Notify.
package capture
