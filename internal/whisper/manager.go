package whisper

import "sync"

// Manager owns the single resident model instance. Loading a different name
// unloads the previous model first; loading the same name is a cache hit.
type Manager struct {
	mu     sync.Mutex
	engine Engine
	model  Model
	name   string
}

// NewManager creates a manager backed by the given engine.
func NewManager(engine Engine) *Manager {
	return &Manager{engine: engine}
}

// Load returns a handle for the named model, reusing the resident instance
// when the name matches.
func (m *Manager) Load(name string) (Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.model != nil && m.name == name {
		return m.model, nil
	}

	if m.model != nil {
		_ = m.model.Close()
		m.model = nil
		m.name = ""
	}

	model, err := m.engine.Load(name)
	if err != nil {
		return nil, err
	}

	m.model = model
	m.name = name
	return model, nil
}

// Unload releases the resident model, if any.
func (m *Manager) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.model != nil {
		_ = m.model.Close()
		m.model = nil
		m.name = ""
	}
}

// IsLoaded reports whether a model is resident.
func (m *Manager) IsLoaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model != nil
}

// LoadedName returns the resident model name, or empty.
func (m *Manager) LoadedName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}
