// Package fsys provides the filesystem operations the bootstrapper performs on
// a target project directory behind a small interface, so callers can swap in
// fakes or wrap failures without touching the os package directly.
package fsys
