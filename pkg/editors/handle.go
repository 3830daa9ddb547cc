package editors

import "github.com/google/uuid"

// Handle is the resolver's receipt for an editor. It remembers how the
// editor was made so that it can be refreshed the same way.
type Handle struct {
	id       uuid.UUID
	editor   Editor
	strategy Strategy
	override string
}

// ID returns the unique identifier of the handle.
func (h *Handle) ID() uuid.UUID { return h.id }

// Editor returns the editor instance.
func (h *Handle) Editor() Editor { return h.editor }

// Strategy returns the name of the strategy that created the editor, or
// "" for editors built by a registered factory.
func (h *Handle) Strategy() string {
	if h.strategy == nil {
		return ""
	}
	return h.strategy.Name()
}

// Override returns the editor override identifier the editor was built
// for, if any.
func (h *Handle) Override() string { return h.override }

// NewHandle wraps an editor built outside the resolver. Refreshing it
// pushes the property value into the editor in place.
func NewHandle(ed Editor) *Handle {
	return &Handle{id: uuid.New(), editor: ed}
}
