// Package manifest reads and rewrites a project's package.json.
//
// The document is held as an ordered mapping of keys to loosely-typed JSON
// values so that unknown fields and their original order survive a
// read-merge-write cycle. Writes are shallow merges: keys in the patch
// replace same-named keys in place, new keys are appended, everything else
// is left untouched.
package manifest
