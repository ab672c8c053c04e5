package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
)

// ErrDriverNotRegistered is returned by [Registry.CreateDevice] when no
// factory has been registered under the requested driver name.
var ErrDriverNotRegistered = errors.New("config: device driver not registered")

// DeviceFactory builds a driver from its config block.
type DeviceFactory func(DeviceConfig) (device.Driver, error)

// Registry maps device driver names to their factories. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]DeviceFactory
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{devices: make(map[string]DeviceFactory)}
}

// RegisterDevice registers a driver factory under name. Subsequent calls
// with the same name overwrite the previous registration.
func (r *Registry) RegisterDevice(name string, factory DeviceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[name] = factory
}

// CreateDevice instantiates the driver registered under cfg.Driver.
// Returns [ErrDriverNotRegistered] if no factory has been registered.
func (r *Registry) CreateDevice(cfg DeviceConfig) (device.Driver, error) {
	r.mu.RLock()
	factory, ok := r.devices[cfg.Driver]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrDriverNotRegistered, cfg.Driver, r.Drivers())
	}
	drv, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: create device driver %q: %w", cfg.Driver, err)
	}
	return drv, nil
}

// Drivers returns the registered driver names in sorted order.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.devices))
	for n := range r.devices {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// OptString returns the option under key, or "" when absent.
func (c DeviceConfig) OptString(key string) (string, error) {
	v, ok := c.Options[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("device.options.%s: want string, got %T", key, v)
	}
	return s, nil
}

// OptInt returns the integer option under key, or 0 when absent.
func (c DeviceConfig) OptInt(key string) (int, error) {
	v, ok := c.Options[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("device.options.%s: want integer, got %T", key, v)
	}
	return n, nil
}

// OptBool returns the boolean option under key, or false when absent.
func (c DeviceConfig) OptBool(key string) (bool, error) {
	v, ok := c.Options[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("device.options.%s: want bool, got %T", key, v)
	}
	return b, nil
}

// OptDuration returns the duration option under key, or 0 when absent. Values
// are Go duration strings such as "60ms".
func (c DeviceConfig) OptDuration(key string) (time.Duration, error) {
	s, err := c.OptString(key)
	if err != nil || s == "" {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("device.options.%s: %w", key, err)
	}
	return d, nil
}
