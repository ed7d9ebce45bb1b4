// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// This is the tool's own configuration (listen port, default input path),
// not the search parameter files it parses — those live in the directive
// and model packages.
package config
