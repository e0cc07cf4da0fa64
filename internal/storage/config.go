package storage

import "fmt"

// Config holds session store configuration
type Config struct {
	Type string // "sqlite" or "memory"
	Path string // sqlite file path
}

// New opens the store named by cfg.Type.
func New(cfg Config) (SessionStore, error) {
	switch cfg.Type {
	case "", "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store type %q", cfg.Type)
	}
}
