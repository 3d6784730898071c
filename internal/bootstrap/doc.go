// Package bootstrap provisions a new Node.js project directory.
//
// A run is a fixed sequence of stages, each completing before the next
// starts:
//
//  1. init: refuse an existing directory, create it, run the package
//     manager's init command
//  2. manifest: merge scripts/params into package.json, then install runtime
//     and dev dependencies as one batched command each
//  3. ignore-file: write the bundled (or configured) .gitignore
//  4. files: write every requested file, creating parent directories
//  5. post-scripts: run caller-supplied commands one at a time, in order
//
// The first failure stops the run and is returned wrapped in a *StageError.
// Nothing is rolled back; a failed run may leave a partially provisioned
// directory behind.
package bootstrap
