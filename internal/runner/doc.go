// Package runner executes shell command strings inside a working directory.
// The Shell implementation streams output to configurable writers while
// capturing it, and reports non-zero exits as *ProcessError.
package runner
