package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openWith(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	s, err := Open(WithPath(path))
	require.NoError(t, err)
	return s
}

// agentIssues returns the issues that concern agent a.
func agentIssues(r ValidationResult, a string) []Issue {
	var out []Issue
	prefix := SectionAgents + "." + a
	for _, issue := range r.Errors() {
		if issue.Path == prefix || strings.HasPrefix(issue.Path, prefix+".") {
			out = append(out, issue)
		}
	}
	return out
}

func TestValidate_DefaultDocumentIsStructurallyValid(t *testing.T) {
	s, _ := openTemp(t)

	result := s.Validate()
	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors())

	// Default directories are not created, so existence warnings are expected.
	for _, w := range result.Warnings() {
		assert.Equal(t, "exists", w.Keyword)
		assert.True(t, strings.HasPrefix(w.Path, "paths."))
	}
}

func TestValidate_AfterReset(t *testing.T) {
	s := openWith(t, `{"paths": 3}`)
	assert.False(t, s.Validate().Valid())

	s.Reset()
	assert.Empty(t, s.Validate().Errors())
}

func TestValidate_ExistingPathsProduceNoWarnings(t *testing.T) {
	dir := t.TempDir()
	s := openWith(t, `{"paths": {"here": "`+filepath.ToSlash(dir)+`"}, "agents": {}, "settings": {}}`)

	result := s.Validate()
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Messages())
}

func TestValidate_MissingPathIsWarning(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	s := openWith(t, `{"paths": {"gone": "`+filepath.ToSlash(missing)+`"}, "agents": {}, "settings": {}}`)

	result := s.Validate()
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings(), 1)
	w := result.Warnings()[0]
	assert.Equal(t, "paths.gone", w.Path)
	assert.Equal(t, SeverityWarning, w.Severity)
	assert.Contains(t, w.String(), "does not exist")
}

func TestValidate_MissingSections(t *testing.T) {
	s := openWith(t, `{"version": "1.0.0"}`)

	result := s.Validate()
	require.False(t, result.Valid())
	errs := result.Errors()
	require.NotEmpty(t, errs)
	assert.Equal(t, "", errs[0].Path)
	assert.Equal(t, "required", errs[0].Keyword)
	for _, section := range Sections {
		assert.Contains(t, errs[0].Message, section)
	}
	assert.True(t, strings.HasPrefix(errs[0].String(), "document: "))
}

func TestValidate_AccumulatesAllChecks(t *testing.T) {
	s := openWith(t, `{
  "version": "not-a-version",
  "paths": {"num": 5, "gone": "/definitely/not/here/brainconf"},
  "agents": {"NOMODEL": {"role": "x"}, "EMPTY": {"model": ""}, "OK": {"model": "m"}},
  "settings": {}
}`)

	result := s.Validate()
	require.False(t, result.Valid())

	var got []string
	for _, issue := range result.Errors() {
		got = append(got, issue.Path+"/"+issue.Keyword)
	}
	assert.ElementsMatch(t, []string{
		"agents.EMPTY.model/minLength",
		"agents.NOMODEL/required",
		"paths.num/type",
		"version/semver",
	}, got)

	require.Len(t, result.Warnings(), 1)
	assert.Equal(t, "paths.gone", result.Warnings()[0].Path)
	assert.Len(t, result.Messages(), 5)
}

func TestValidate_ModelErrorIffEmptyModel(t *testing.T) {
	s := openWith(t, `{
  "paths": {},
  "agents": {"A": {"model": "m"}, "B": {"model": ""}, "C": {"role": "r"}, "D": {"model": 7}},
  "settings": {}
}`)
	result := s.Validate()

	for _, name := range s.AgentNames() {
		p, err := s.GetAgent(name)
		require.NoError(t, err)
		hasModel := p.Model != ""
		assert.Equal(t, hasModel, len(agentIssues(result, name)) == 0, "agent %s", name)
	}
}

func TestValidate_VersionWithPrefix(t *testing.T) {
	s := openWith(t, `{"version": "v2.1.0", "paths": {}, "agents": {}, "settings": {}}`)
	assert.True(t, s.Validate().Valid())
}

func TestValidate_NeverMutates(t *testing.T) {
	s := openWith(t, `{"paths": {"x": 1}}`)
	before := s.Document()
	_ = s.Validate()
	assert.True(t, before.Equal(s.Document()))
}

func TestValidate_AgentKeyWithSlash(t *testing.T) {
	s := openWith(t, `{"paths": {}, "agents": {"team/ATLAS": {"role": "builder"}}, "settings": {}}`)

	result := s.Validate()
	require.Len(t, result.Errors(), 1)
	issue := result.Errors()[0]
	assert.Equal(t, "agents.team/ATLAS", issue.Path)
	assert.Equal(t, "required", issue.Keyword)
	assert.Len(t, agentIssues(result, "team/ATLAS"), 1)
}
