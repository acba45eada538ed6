// Package config provides typed configuration loading for the storefront SDK.
//
// Configuration structs are populated from environment variables (with .env
// file support for development) via Load, or from YAML files via LoadFile.
// Each unique configuration type is parsed from the environment exactly once
// per process; subsequent Load calls return the cached value, so packages can
// load their own config independently without coordination.
//
// # Usage
//
//	type ClientConfig struct {
//		APIBaseURL string        `env:"STOREFRONT_API_URL,required"`
//		Timeout    time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	config.MustLoad(&cfg)
package config
