// Package recipe defines the bootstrap options value (a "recipe"), loads it
// from YAML or JSON files, validates it against an embedded schema, and
// provides named presets plus the merge rules used to combine them.
package recipe
