// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// StorageContext owns the six storage handles (five entity kinds plus the
// relationship graph). Handles are opened lazily on first use, migrated once,
// and cached for the life of the context. Constructed once at process start
// and passed into each repository and the edge store; there are no package
// globals.
type StorageContext struct {
	config     *Config
	handles    map[Handle]*gorm.DB
	handlesMux sync.RWMutex
}

// NewStorageContext creates a storage context. No handle is opened until the
// first DB() call for it.
func NewStorageContext(cfg *Config) *StorageContext {
	return &StorageContext{
		config:  cfg,
		handles: make(map[Handle]*gorm.DB),
	}
}

// DB opens or returns the cached connection for a storage handle
func (c *StorageContext) DB(handle Handle) (*gorm.DB, error) {
	// Check cache first
	c.handlesMux.RLock()
	if db, ok := c.handles[handle]; ok {
		c.handlesMux.RUnlock()
		return db, nil
	}
	c.handlesMux.RUnlock()

	c.handlesMux.Lock()
	defer c.handlesMux.Unlock()

	// Double-check after acquiring write lock
	if db, ok := c.handles[handle]; ok {
		return db, nil
	}

	db, err := Connect(c.config, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s handle: %w", handle, err)
	}

	if err := Migrate(db, handle); err != nil {
		_ = Close(db)
		return nil, err
	}

	c.handles[handle] = db
	return db, nil
}

// Config returns the context's database configuration
func (c *StorageContext) Config() *Config {
	return c.config
}

// Close closes every cached handle
func (c *StorageContext) Close() error {
	c.handlesMux.Lock()
	defer c.handlesMux.Unlock()

	var firstErr error
	for handle, db := range c.handles {
		if err := Close(db); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s handle: %w", handle, err)
		}
		delete(c.handles, handle)
	}
	return firstErr
}
