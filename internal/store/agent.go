package store

import orderedmap "github.com/wk8/go-ordered-map/v2"

// AgentProfile describes one collaborating agent. It is a read view: changes
// to a returned profile do not reach the document.
type AgentProfile struct {
	Name         string   `json:"name" yaml:"name"`
	Model        string   `json:"model" yaml:"model"`
	Role         string   `json:"role" yaml:"role"`
	Free         bool     `json:"free" yaml:"free"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
}

// value encodes p in the on-disk field order.
func (p AgentProfile) value() Value {
	caps := p.Capabilities
	if caps == nil {
		caps = []string{}
	}
	m := NewMapping()
	m.Set("name", String(p.Name))
	m.Set("model", String(p.Model))
	m.Set("role", String(p.Role))
	m.Set("free", Bool(p.Free))
	m.Set("capabilities", Strings(caps))
	return Map(m)
}

// profileFromMapping reads a profile stored under key. Fields of the wrong
// shape read as their zero value; Validate reports them.
func profileFromMapping(key string, m *orderedmap.OrderedMap[string, Value]) AgentProfile {
	p := AgentProfile{Name: key, Capabilities: []string{}}
	if v, ok := m.Get("name"); ok {
		if s, ok := v.AsString(); ok && s != "" {
			p.Name = s
		}
	}
	if v, ok := m.Get("model"); ok {
		p.Model, _ = v.AsString()
	}
	if v, ok := m.Get("role"); ok {
		p.Role, _ = v.AsString()
	}
	if v, ok := m.Get("free"); ok {
		p.Free, _ = v.AsBool()
	}
	if v, ok := m.Get("capabilities"); ok {
		if caps, ok := v.AsStrings(); ok {
			p.Capabilities = caps
		}
	}
	return p
}
