package settings

// Tool property names published by the selection tool.
const (
	PropSelectedObjectID = "SelectedObjectId"
	PropContainerID      = "ContainerID"
	PropMeshType         = "MeshType"
)

// ToolBridge carries the active tool's property values (selected object,
// its container id, its mesh type) and notifies listeners when they change.
// One notification may carry several property updates; all of them are
// applied before any listener runs, so listeners never observe a mix of old
// and new values.
type ToolBridge struct {
	props     map[string]string
	listeners []func()
}

func NewToolBridge() *ToolBridge {
	return &ToolBridge{props: map[string]string{}}
}

// Property returns the current value of a tool property, "" if unset.
func (b *ToolBridge) Property(name string) string {
	return b.props[name]
}

// SetProperty updates one property and notifies listeners.
func (b *ToolBridge) SetProperty(name, value string) {
	b.SetProperties(map[string]string{name: value})
}

// SetProperties applies a batch of property updates, then notifies listeners
// exactly once.
func (b *ToolBridge) SetProperties(updates map[string]string) {
	for name, value := range updates {
		b.props[name] = value
	}
	b.notify()
}

// AddListener registers a callback fired after every property change.
func (b *ToolBridge) AddListener(fn func()) {
	b.listeners = append(b.listeners, fn)
}

func (b *ToolBridge) notify() {
	for _, fn := range b.listeners {
		fn()
	}
}
