package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidKey reports a registration with an empty key or nil instance.
var ErrInvalidKey = errors.New("invalid service key")

// Registry is a keyed singleton locator used to hand cross-cutting
// services (script engines, resource managers) to components without
// package-level globals. Access happens on the host's single logical
// thread.
type Registry struct {
	services map[string]any
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		services: make(map[string]any, 8),
		log:      log,
	}
}

// Register stores instance under key. An existing registration is
// silently replaced; reconfiguring a service at startup is a normal use
// case, not an error.
func (r *Registry) Register(key string, instance any) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if instance == nil {
		return fmt.Errorf("%w: nil instance for %q", ErrInvalidKey, key)
	}
	r.services[key] = instance
	return nil
}

// Resolve returns the instance registered under key. Optional-service
// lookups are a normal pattern, so a miss is non-fatal: the caller gets
// (nil, false) and a warning is logged.
func (r *Registry) Resolve(key string) (any, bool) {
	instance, ok := r.services[key]
	if !ok {
		r.log.Warn("service not registered", zap.String("key", key))
		return nil, false
	}
	return instance, true
}

// IsRegistered reports whether key has a registration, without the miss
// warning Resolve carries.
func (r *Registry) IsRegistered(key string) bool {
	_, ok := r.services[key]
	return ok
}

// Unregister drops the registration under key and reports whether one
// existed.
func (r *Registry) Unregister(key string) bool {
	if _, ok := r.services[key]; !ok {
		return false
	}
	delete(r.services, key)
	return true
}

// Clear drops every registration.
func (r *Registry) Clear() {
	clear(r.services)
}
