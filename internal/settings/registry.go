// Package settings implements the container-based settings layer: a registry
// of setting containers, property providers bound to one container, per-object
// visibility tracking, and a list model that derives a filtered settings view.
package settings

import (
	"github.com/piwi3910/PrintPrep/internal/model"
)

// Container holds the setting definitions and override values for one scope
// (the global machine stack, or one object's per-object stack). A container
// may inherit values from a parent container.
type Container struct {
	id          string
	definitions []model.SettingDescriptor
	byKey       map[string]model.SettingDescriptor
	values      map[string]string
	inherits    string // Parent container id; "" = none
}

// ID returns the container's id.
func (c *Container) ID() string {
	return c.id
}

// Definitions returns the ordered setting definitions of the container.
func (c *Container) Definitions() []model.SettingDescriptor {
	return c.definitions
}

// Definition returns the descriptor for a key.
func (c *Container) Definition(key string) (model.SettingDescriptor, bool) {
	d, ok := c.byKey[key]
	return d, ok
}

// Registry is the container registry: every settings scope in the application
// is a container registered here, addressable by id. An empty or unknown id
// resolves to no container, which readers treat as "no settings".
type Registry struct {
	containers map[string]*Container
}

func NewRegistry() *Registry {
	return &Registry{containers: map[string]*Container{}}
}

// AddContainer registers a container with the given definitions and parent.
// Registering an existing id replaces the container.
func (r *Registry) AddContainer(id string, definitions []model.SettingDescriptor, inherits string) *Container {
	byKey := make(map[string]model.SettingDescriptor, len(definitions))
	for _, d := range definitions {
		byKey[d.Key] = d
	}
	c := &Container{
		id:          id,
		definitions: definitions,
		byKey:       byKey,
		values:      map[string]string{},
		inherits:    inherits,
	}
	r.containers[id] = c
	return c
}

// RemoveContainer drops a container from the registry.
func (r *Registry) RemoveContainer(id string) {
	delete(r.containers, id)
}

// Container returns the container for an id, or nil for "" and unknown ids.
func (r *Registry) Container(id string) *Container {
	if id == "" {
		return nil
	}
	return r.containers[id]
}

// Definitions returns the ordered definitions for a container id, or nil when
// the id does not resolve.
func (r *Registry) Definitions(id string) []model.SettingDescriptor {
	c := r.Container(id)
	if c == nil {
		return nil
	}
	return c.definitions
}

// SetValue writes an override value into a container. Writes to unresolvable
// containers are dropped silently.
func (r *Registry) SetValue(id, key, value string) {
	c := r.Container(id)
	if c == nil {
		return
	}
	c.values[key] = value
}

// ClearValue removes an override from a container.
func (r *Registry) ClearValue(id, key string) {
	c := r.Container(id)
	if c == nil {
		return
	}
	delete(c.values, key)
}

// Value resolves a setting value for a container: own override first, then
// the inherit chain, then the definition default. Returns "" when nothing
// resolves.
func (r *Registry) Value(id, key string) string {
	seen := map[string]bool{}
	for cid := id; cid != "" && !seen[cid]; {
		seen[cid] = true
		c := r.Container(cid)
		if c == nil {
			break
		}
		if v, ok := c.values[key]; ok {
			return v
		}
		cid = c.inherits
	}
	if c := r.Container(id); c != nil {
		if d, ok := c.byKey[key]; ok {
			return d.Default
		}
	}
	return ""
}

// Overrides returns a copy of the container's own override values.
func (r *Registry) Overrides(id string) map[string]string {
	c := r.Container(id)
	if c == nil {
		return map[string]string{}
	}
	copied := make(map[string]string, len(c.values))
	for k, v := range c.values {
		copied[k] = v
	}
	return copied
}
