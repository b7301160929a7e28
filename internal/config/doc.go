// Package config manages user-level settings stored at ~/.stackseed/config.yaml.
// It provides functions to load, read, and write configuration keys such as the
// AI provider, the package manager used for snippet dependencies, and the
// persisted API key.
package config
