/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"
)

// The description registry records the human-readable text the datatype
// register publishes for each datatype name. Discovery populates it as a
// side effect; nothing in conversion depends on it.

var (
	descriptionRegistry = make(map[string]string)
	mu                  sync.RWMutex
)

// RegisterDescription associates a datatype name with its published description.
func RegisterDescription(datatype, text string) {
	mu.Lock()
	defer mu.Unlock()
	descriptionRegistry[datatype] = text
}

// GetDescription retrieves the description for a datatype name, if any.
func GetDescription(datatype string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	text, ok := descriptionRegistry[datatype]
	return text, ok
}
