// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file and an optional YAML
// config file. Each binary loads the same structure under its own
// environment prefix (TRIVIA_ or COFFEE_).
package config
