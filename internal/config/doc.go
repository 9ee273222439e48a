// Package config loads runtime configuration from the process environment
// and an optional .env file.
//
// [Load] reads the .env file first (its values override already-exported
// variables), then builds a typed [Config] with defaults for everything
// except the API key. [Config.Validate] must pass before any network call;
// [Config.KeyWarnings] reports non-fatal findings about the key format.
package config
