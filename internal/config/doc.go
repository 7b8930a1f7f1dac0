// Package config defines the application configuration structure and its
// loading logic. Configuration comes from the process environment
// (BOOKREC_* variables) layered over an optional config.yaml.
package config
