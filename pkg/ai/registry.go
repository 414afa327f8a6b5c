// ABOUTME: Provider registry for mapping API types to provider factories
// ABOUTME: Thread-safe registration and lookup of ApiProvider implementations

package ai

import (
	"context"
	"slices"
	"sync"
)

// ProviderFactory creates an ApiProvider given a base URL override (optional).
type ProviderFactory func(baseURL string) ApiProvider

// ApiProvider is the interface all completion providers implement.
type ApiProvider interface {
	// Api returns the provider's API identifier.
	Api() Api

	// Complete issues one non-streaming completion request.
	// The context.Context controls cancellation of the underlying HTTP request.
	Complete(ctx context.Context, model *Model, req *Request) (*Response, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Api]ProviderFactory)
)

// RegisterProvider registers a factory for the given API.
func RegisterProvider(api Api, factory ProviderFactory) {
	registryMu.Lock()
	registry[api] = factory
	registryMu.Unlock()
}

// GetProvider returns a provider for the given API and optional base URL.
// Returns nil if no provider is registered.
func GetProvider(api Api, baseURL string) ApiProvider {
	registryMu.RLock()
	factory, ok := registry[api]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory(baseURL)
}

// HasProvider checks if a provider is registered for the given API.
func HasProvider(api Api) bool {
	registryMu.RLock()
	_, ok := registry[api]
	registryMu.RUnlock()
	return ok
}

// RegisteredApis returns the registered API identifiers, sorted.
func RegisteredApis() []Api {
	registryMu.RLock()
	apis := make([]Api, 0, len(registry))
	for api := range registry {
		apis = append(apis, api)
	}
	registryMu.RUnlock()
	slices.Sort(apis)
	return apis
}
