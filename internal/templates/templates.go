// Package templates holds the files bundled into the binary and copied into
// every bootstrapped project.
package templates

import _ "embed"

// IgnoreFileName is the name the ignore template is written under.
const IgnoreFileName = ".gitignore"

//go:embed gitignore
var gitignore []byte

// Gitignore returns a copy of the bundled ignore-file template.
func Gitignore() []byte {
	return append([]byte(nil), gitignore...)
}
