package settings

import "sort"

// VisibilityHandler tracks which settings have been added to the inline
// per-object view, keyed by object id. Keys on the skip list survive a
// reset; everything else is cleared.
type VisibilityHandler struct {
	visible   map[string]map[string]bool
	skipReset map[string]bool
}

func NewVisibilityHandler() *VisibilityHandler {
	return &VisibilityHandler{
		visible:   map[string]map[string]bool{},
		skipReset: map[string]bool{},
	}
}

// Visible returns the added setting keys for an object, sorted for stable
// iteration.
func (h *VisibilityHandler) Visible(objectID string) []string {
	keys := make([]string, 0, len(h.visible[objectID]))
	for k := range h.visible[objectID] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsVisible reports whether a key has been added for an object.
func (h *VisibilityHandler) IsVisible(objectID, key string) bool {
	return h.visible[objectID][key]
}

// SetVisible replaces the added-settings set for an object.
func (h *VisibilityHandler) SetVisible(objectID string, keys []string) {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	h.visible[objectID] = set
}

// Add marks a key as added for an object.
func (h *VisibilityHandler) Add(objectID, key string) {
	if objectID == "" || key == "" {
		return
	}
	if h.visible[objectID] == nil {
		h.visible[objectID] = map[string]bool{}
	}
	h.visible[objectID][key] = true
}

// Remove drops a key from an object's added settings.
func (h *VisibilityHandler) Remove(objectID, key string) {
	delete(h.visible[objectID], key)
}

// SetSkipResetKeys replaces the set of keys that survive a Reset.
func (h *VisibilityHandler) SetSkipResetKeys(keys ...string) {
	h.skipReset = make(map[string]bool, len(keys))
	for _, k := range keys {
		if k != "" {
			h.skipReset[k] = true
		}
	}
}

// Reset clears an object's added settings except for skip-listed keys.
func (h *VisibilityHandler) Reset(objectID string) {
	kept := map[string]bool{}
	for k := range h.visible[objectID] {
		if h.skipReset[k] {
			kept[k] = true
		}
	}
	h.visible[objectID] = kept
}

// Export returns all visibility sets for persistence.
func (h *VisibilityHandler) Export() map[string][]string {
	out := make(map[string][]string, len(h.visible))
	for id := range h.visible {
		if keys := h.Visible(id); len(keys) > 0 {
			out[id] = keys
		}
	}
	return out
}

// Import replaces all visibility sets from persisted data.
func (h *VisibilityHandler) Import(sets map[string][]string) {
	h.visible = map[string]map[string]bool{}
	for id, keys := range sets {
		h.SetVisible(id, keys)
	}
}
