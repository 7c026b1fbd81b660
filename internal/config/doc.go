// Package config defines the application configuration structures and the
// loading logic that populates them from environment variables (with the
// TASKLOOM_ prefix) and an optional YAML file. Configuration is validated
// at startup; a missing JWT secret or database URL is a fatal error rather
// than something detected on the first request.
package config
