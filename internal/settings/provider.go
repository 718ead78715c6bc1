package settings

import (
	"strconv"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// ValidationState reports whether a stored value parses under the setting's
// declared type.
type ValidationState int

const (
	StateValid   ValidationState = iota
	StateInvalid                 // Value does not parse / enum option unknown
	StateUnknown                 // Key not present in the bound container
)

// Provider exposes the properties of settings in one container: resolved
// value, enabled flag, validation state, and extruder limit. Writes go
// through to the container registry. A provider bound to an empty container
// id reads as "no settings" and drops writes.
type Provider struct {
	registry    *Registry
	containerID string
}

func NewProvider(registry *Registry) *Provider {
	return &Provider{registry: registry}
}

// ContainerID returns the currently bound container id.
func (p *Provider) ContainerID() string {
	return p.containerID
}

// setContainer rebinds the provider. Unexported: rebinding happens only
// through a Subscription so both providers of a selection move together.
func (p *Provider) setContainer(id string) {
	p.containerID = id
}

// Value resolves the current value for a key through the container's
// inherit chain.
func (p *Provider) Value(key string) string {
	return p.registry.Value(p.containerID, key)
}

// SetValue writes an override value through to the bound container.
func (p *Provider) SetValue(key, value string) {
	p.registry.SetValue(p.containerID, key, value)
}

// ClearValue removes an override from the bound container, falling back to
// inherited values.
func (p *Provider) ClearValue(key string) {
	p.registry.ClearValue(p.containerID, key)
}

// Enabled reports whether the key resolves in the bound container.
func (p *Provider) Enabled(key string) bool {
	c := p.registry.Container(p.containerID)
	if c == nil {
		return false
	}
	_, ok := c.Definition(key)
	return ok
}

// LimitToExtruder returns the extruder the setting is limited to, or -1.
func (p *Provider) LimitToExtruder(key string) int {
	c := p.registry.Container(p.containerID)
	if c == nil {
		return -1
	}
	d, ok := c.Definition(key)
	if !ok {
		return -1
	}
	return d.LimitToExtruder
}

// ValidationState checks the resolved value against the declared type.
func (p *Provider) ValidationState(key string) ValidationState {
	c := p.registry.Container(p.containerID)
	if c == nil {
		return StateUnknown
	}
	d, ok := c.Definition(key)
	if !ok {
		return StateUnknown
	}
	return validate(d.Type, p.Value(key), d.Options)
}

func validate(t model.SettingType, value string, options []string) ValidationState {
	switch t {
	case model.SettingTypeInt, model.SettingTypeExtruder, model.SettingTypeOptionalExtruder:
		if _, err := strconv.Atoi(value); err != nil {
			return StateInvalid
		}
	case model.SettingTypeFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return StateInvalid
		}
	case model.SettingTypeBool:
		if value != "true" && value != "false" {
			return StateInvalid
		}
	case model.SettingTypeEnum:
		for _, opt := range options {
			if value == opt {
				return StateValid
			}
		}
		return StateInvalid
	}
	return StateValid
}

// Subscription binds the current selection to the settings layer. It owns the
// primary property provider and the inherit-stack provider; Rebind is the only
// mutator and always moves both providers to the new container id together,
// so no reader can observe them pointing at different containers.
type Subscription struct {
	objectID      string
	provider      *Provider
	inheritsStack *Provider
}

func NewSubscription(registry *Registry) *Subscription {
	return &Subscription{
		provider:      NewProvider(registry),
		inheritsStack: NewProvider(registry),
	}
}

// Rebind points the subscription at a newly selected object and its
// container. Both providers are updated before Rebind returns.
func (s *Subscription) Rebind(objectID, containerID string) {
	s.objectID = objectID
	s.provider.setContainer(containerID)
	s.inheritsStack.setContainer(containerID)
}

// ObjectID returns the id of the currently bound object.
func (s *Subscription) ObjectID() string {
	return s.objectID
}

// Provider returns the primary property provider.
func (s *Subscription) Provider() *Provider {
	return s.provider
}

// InheritsStack returns the provider used to resolve inherited properties.
func (s *Subscription) InheritsStack() *Provider {
	return s.inheritsStack
}
