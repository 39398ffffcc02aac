package settings

import (
	"context"
	"fmt"
)

// Config is an editable view of one namespace. Set calls are buffered until
// Save.
type Config struct {
	store     Store
	namespace string
	values    Values
	dirty     Values
}

// Load reads namespace from store.
func Load(ctx context.Context, store Store, namespace string) (*Config, error) {
	values, err := store.Get(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", namespace, err)
	}
	if values == nil {
		values = Values{}
	}
	return &Config{
		store:     store,
		namespace: namespace,
		values:    values,
		dirty:     Values{},
	}, nil
}

func (c *Config) Namespace() string { return c.namespace }

// Get returns the current value of key, including unsaved sets.
func (c *Config) Get(key string) string {
	if v, ok := c.dirty[key]; ok {
		return v
	}
	return c.values[key]
}

// Set stages a value and returns c for chaining.
func (c *Config) Set(key, value string) *Config {
	c.dirty[key] = value
	return c
}

// Save writes all staged values in one store call.
func (c *Config) Save(ctx context.Context) error {
	if len(c.dirty) == 0 {
		return nil
	}
	if err := c.store.Set(ctx, c.namespace, c.dirty); err != nil {
		return fmt.Errorf("save %s: %w", c.namespace, err)
	}
	for k, v := range c.dirty {
		c.values[k] = v
	}
	c.dirty = Values{}
	return nil
}
