// Package config manages user-level settings stored at
// ~/.bootstrapper/config.yaml. Every key can be overridden with a
// BOOTSTRAPPER_-prefixed environment variable, e.g.
// BOOTSTRAPPER_PACKAGE_MANAGER=pnpm.
package config
