package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/teambrain/brainconf/internal/store"
)

// newTable creates a table writer with the standard styling.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func renderPaths(w io.Writer, entries []store.PathEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Path"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Path})
	}
	t.Render()
}

func renderAgents(w io.Writer, agents []store.AgentProfile) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Model", "Role", "Free", "Capabilities"})
	for _, a := range agents {
		t.AppendRow(table.Row{a.Name, a.Model, a.Role, a.Free, strings.Join(a.Capabilities, ", ")})
	}
	t.Render()
}

func renderSettings(w io.Writer, entries []store.SettingEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Value.String()})
	}
	t.Render()
}

// printJSON writes v as two-space indented JSON. Values and documents keep
// their key order.
func printJSON(w io.Writer, v any) error {
	var data []byte
	var err error
	switch t := v.(type) {
	case store.Value:
		data, err = t.MarshalJSON()
	case store.Document:
		data, err = t.MarshalJSON()
	default:
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("formatting JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, out.String())
	return err
}
