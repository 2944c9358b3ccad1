// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigError reports a missing or invalid configuration value, such as an
// absent provider API key. It is always detected before any network call.
type ConfigError struct {
	// Key names the configuration value, e.g. "tavily-api-key".
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// ServiceError reports a failure of an external provider call: a transport
// error, a non-200 status, or an unusable response body.
type ServiceError struct {
	// Provider identifies the remote service, e.g. "tavily" or "gemini".
	Provider string

	// Status is the HTTP status code, or 0 when the request never
	// received a response.
	Status int

	Err error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// FSError reports a filesystem failure during export.
type FSError struct {
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return e.Err }
