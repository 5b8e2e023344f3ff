// Package config loads application configuration from an optional YAML file
// and WORDWISE_-prefixed environment variables, applies defaults and
// validates the result.
package config
