package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Section names and the optional version key of a Document.
const (
	SectionPaths    = "paths"
	SectionAgents   = "agents"
	SectionSettings = "settings"
	KeyVersion      = "version"
)

// Sections lists the required top-level keys in document order.
var Sections = []string{SectionPaths, SectionAgents, SectionSettings}

// DocumentVersion is written into freshly synthesized documents.
const DocumentVersion = "1.0.0"

// Document is the in-memory form of the configuration file. Its root is
// always a mapping.
type Document struct {
	root *orderedmap.OrderedMap[string, Value]
}

// ParseDocument decodes a JSON object into a Document.
func ParseDocument(data []byte) (Document, error) {
	v, err := ParseValue(data)
	if err != nil {
		return Document{}, err
	}
	m, ok := v.AsMapping()
	if !ok {
		return Document{}, fmt.Errorf("top-level value is a %s, not an object", v.Kind())
	}
	return Document{root: m}, nil
}

// Value returns the root mapping as a Value. The tree is shared.
func (d Document) Value() Value { return Map(d.root) }

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	m, _ := d.Value().Clone().AsMapping()
	return Document{root: m}
}

// Equal reports whether d and o hold the same data.
func (d Document) Equal(o Document) bool {
	return d.Value().Equal(o.Value())
}

// MarshalJSON encodes d compactly in document key order.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.Value().MarshalJSON()
}

// MarshalIndent encodes d as two-space indented JSON with a trailing newline.
func (d Document) MarshalIndent() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MarshalYAML renders d with keys in document order.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.Value().MarshalYAML()
}

// splitKey breaks a dotted key into segments, rejecting empty ones.
func splitKey(key string) ([]string, error) {
	if key == "" {
		return nil, errors.New("key is empty")
	}
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("key %q has an empty segment", key)
		}
	}
	return parts, nil
}

// lookup walks parts from the root. Missing segments and non-mapping
// intermediates are errors.
func (d Document) lookup(key string, parts []string) (Value, error) {
	cur := d.Value()
	for i, part := range parts {
		m, ok := cur.AsMapping()
		if !ok {
			return Value{}, &NotTraversableError{
				Key:     key,
				Segment: strings.Join(parts[:i], "."),
				Found:   cur.Kind(),
			}
		}
		next, ok := m.Get(part)
		if !ok {
			return Value{}, &KeyNotFoundError{Kind: MissingKey, Key: key}
		}
		cur = next
	}
	return cur, nil
}

// assign walks parts from the root creating missing intermediate mappings,
// then stores val under the last segment. An existing intermediate that is
// not a mapping is never replaced.
func (d Document) assign(key string, parts []string, val Value) error {
	cur := d.root
	for i, part := range parts[:len(parts)-1] {
		next, ok := cur.Get(part)
		if !ok {
			created := NewMapping()
			cur.Set(part, Map(created))
			cur = created
			continue
		}
		m, ok := next.AsMapping()
		if !ok {
			return &NotTraversableError{
				Key:     key,
				Segment: strings.Join(parts[:i+1], "."),
				Found:   next.Kind(),
			}
		}
		cur = m
	}
	cur.Set(parts[len(parts)-1], val)
	return nil
}

// section returns the named top-level mapping. When create is set a missing
// section is added; an existing non-mapping section is always an error.
func (d Document) section(name string, create bool) (*orderedmap.OrderedMap[string, Value], bool, error) {
	v, ok := d.root.Get(name)
	if !ok {
		if !create {
			return nil, false, nil
		}
		m := NewMapping()
		d.root.Set(name, Map(m))
		return m, true, nil
	}
	m, ok := v.AsMapping()
	if !ok {
		return nil, false, &NotTraversableError{Key: name, Segment: name, Found: v.Kind()}
	}
	return m, true, nil
}

// DefaultDocument builds the built-in configuration. Default paths are rooted
// at hq, the directory that holds the configuration file.
func DefaultDocument(hq string) Document {
	at := func(elem ...string) Value {
		return String(filepath.ToSlash(filepath.Join(append([]string{hq}, elem...)...)))
	}

	paths := NewMapping()
	paths.Set("synapse", at("MEMORY_CORE_V2", "03_INTER_AI_COMMS", "THE_SYNAPSE", "active"))
	paths.Set("memory_bridge_db", at("MEMORY_CORE_V2", "00_SHARED_MEMORY", "memory_bridge.db"))
	paths.Set("task_queue_db", at("TASK_QUEUE", "taskqueue.db"))
	paths.Set("memory_core", at("MEMORY_CORE_V2"))
	paths.Set("beacon_hq", at())

	agents := NewMapping()
	for _, p := range defaultAgents() {
		agents.Set(p.Name, p.value())
	}

	settings := NewMapping()
	settings.Set("default_poll_interval", numberLiteral("1.0"))
	settings.Set("max_retries", Int(3))
	settings.Set("timeout_seconds", Int(30))
	settings.Set("log_level", String("INFO"))

	root := NewMapping()
	root.Set(KeyVersion, String(DocumentVersion))
	root.Set(SectionPaths, Map(paths))
	root.Set(SectionAgents, Map(agents))
	root.Set(SectionSettings, Map(settings))
	return Document{root: root}
}

func defaultAgents() []AgentProfile {
	return []AgentProfile{
		{Name: "ATLAS", Model: "sonnet-4.5", Role: "builder",
			Capabilities: []string{"tool_creation", "testing", "documentation"}},
		{Name: "FORGE", Model: "opus-4.5", Role: "orchestrator",
			Capabilities: []string{"planning", "architecture", "review"}},
		{Name: "CLIO", Model: "sonnet-4.5", Role: "linux-specialist",
			Capabilities: []string{"system_admin", "deployment", "automation"}},
		{Name: "BOLT", Model: "grok", Role: "executor", Free: true,
			Capabilities: []string{"code_execution", "testing", "quick_tasks"}},
		{Name: "NEXUS", Model: "sonnet-4.5", Role: "tester",
			Capabilities: []string{"comprehensive_testing", "qa", "validation"}},
	}
}
