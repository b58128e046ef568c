// Package config loads typed configuration structs from environment
// variables using caarlos0/env struct tags, with .env bootstrapping for
// local development. Each configuration type is parsed once per process
// and cached for repeated loads.
package config
