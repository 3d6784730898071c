// Package doctor verifies that the toolchain a bootstrap run depends on is
// available: node, npx, and the selected package manager on PATH, with a
// supported Node.js version. It also validates package.json files.
package doctor
