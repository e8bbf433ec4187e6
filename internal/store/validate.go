package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/teambrain/brainconf/internal/schema"
)

// Severity grades a validation issue.
type Severity string

const (
	// SeverityError marks a structural problem; the document is invalid.
	SeverityError Severity = "error"
	// SeverityWarning marks a problem with the environment, such as a
	// configured directory that does not exist.
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding.
type Issue struct {
	Path     string // dotted location, empty for the document root
	Message  string
	Keyword  string // check that failed: a schema keyword, "exists" or "semver"
	Severity Severity
}

func (i Issue) String() string {
	if i.Path == "" {
		return "document: " + i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationResult holds every issue found by Validate, errors first in
// check order, then warnings.
type ValidationResult struct {
	Issues []Issue
}

// Valid reports whether no error-severity issue was found. Warnings do not
// make a document invalid.
func (r ValidationResult) Valid() bool {
	return len(r.Errors()) == 0
}

// Errors returns the error-severity issues.
func (r ValidationResult) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (r ValidationResult) Warnings() []Issue { return r.filter(SeverityWarning) }

// Messages returns every issue rendered as text.
func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.String())
	}
	return out
}

func (r ValidationResult) filter(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Validate checks the in-memory document and reports every problem found.
// It never fails: problems running a check are reported as issues too.
//
// Structural checks (required sections, agent models, string paths) come from
// the embedded JSON schema. Configured paths that do not exist on disk are
// warnings. A version field, when present, must be a semantic version.
func (s *Store) Validate() ValidationResult {
	var result ValidationResult
	result.Issues = append(result.Issues, s.schemaIssues()...)
	result.Issues = append(result.Issues, s.versionIssues()...)
	result.Issues = append(result.Issues, s.pathExistenceIssues()...)
	return result
}

func (s *Store) schemaIssues() []Issue {
	data, err := s.doc.MarshalJSON()
	if err != nil {
		return []Issue{{Message: fmt.Sprintf("encoding document: %v", err), Severity: SeverityError}}
	}

	res, err := schema.Validate(data)
	if err != nil {
		return []Issue{{Message: err.Error(), Severity: SeverityError}}
	}

	issues := make([]Issue, 0, len(res.Issues))
	for _, vi := range res.Issues {
		issues = append(issues, Issue{
			Path:     strings.Join(vi.Location, "."),
			Message:  vi.Message,
			Keyword:  vi.Keyword,
			Severity: SeverityError,
		})
	}
	return issues
}

func (s *Store) versionIssues() []Issue {
	v, ok := s.doc.root.Get(KeyVersion)
	if !ok {
		return nil
	}
	str, ok := v.AsString()
	if !ok {
		// Reported by the schema.
		return nil
	}
	if _, err := parseSemver(str); err != nil {
		return []Issue{{
			Path:     KeyVersion,
			Message:  fmt.Sprintf("%q is not a semantic version: %v", str, err),
			Keyword:  "semver",
			Severity: SeverityError,
		}}
	}
	return nil
}

func (s *Store) pathExistenceIssues() []Issue {
	paths, ok, err := s.doc.section(SectionPaths, false)
	if err != nil || !ok {
		return nil
	}

	var issues []Issue
	for pair := paths.Oldest(); pair != nil; pair = pair.Next() {
		p, ok := pair.Value.AsString()
		if !ok {
			continue
		}
		_, statErr := os.Stat(p)
		if statErr == nil {
			continue
		}
		msg := fmt.Sprintf("%s does not exist", p)
		if !errors.Is(statErr, fs.ErrNotExist) {
			msg = fmt.Sprintf("cannot stat %s: %v", p, statErr)
		}
		issues = append(issues, Issue{
			Path:     SectionPaths + "." + pair.Key,
			Message:  msg,
			Keyword:  "exists",
			Severity: SeverityWarning,
		})
	}
	return issues
}

// parseSemver tolerates a leading "v".
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
