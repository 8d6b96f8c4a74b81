// Package model defines the core data types shared across gitgoal.
package model

import "fmt"

// Intent is the conventional-commit change classification.
type Intent int

const (
	IntentFeat Intent = iota
	IntentFix
	IntentRefactor
	IntentDocs
	IntentChore
)

func (i Intent) String() string {
	switch i {
	case IntentFeat:
		return "feat"
	case IntentFix:
		return "fix"
	case IntentRefactor:
		return "refactor"
	case IntentDocs:
		return "docs"
	case IntentChore:
		return "chore"
	default:
		return "unknown"
	}
}

// ParseIntent maps a conventional-commit type token to an Intent.
func ParseIntent(s string) (Intent, bool) {
	switch s {
	case "feat":
		return IntentFeat, true
	case "fix":
		return IntentFix, true
	case "refactor":
		return IntentRefactor, true
	case "docs":
		return IntentDocs, true
	case "chore":
		return IntentChore, true
	}
	return IntentFeat, false
}

// Domain is the coarse area a changed file belongs to.
type Domain int

const (
	DomainCore Domain = iota
	DomainDocs
	DomainTest
	DomainConfig
	DomainCI
	DomainBuild
	DomainDocker
	DomainAPI
	DomainApp
	DomainOther
)

func (d Domain) String() string {
	switch d {
	case DomainCore:
		return "core"
	case DomainDocs:
		return "docs"
	case DomainTest:
		return "test"
	case DomainConfig:
		return "config"
	case DomainCI:
		return "ci"
	case DomainBuild:
		return "build"
	case DomainDocker:
		return "docker"
	case DomainAPI:
		return "api"
	case DomainApp:
		return "app"
	default:
		return "other"
	}
}

// ParseDomain maps a domain label from configuration to a Domain.
func ParseDomain(s string) (Domain, bool) {
	for d := DomainCore; d <= DomainOther; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return DomainOther, false
}

// EntityKind categorizes a detected code construct.
type EntityKind int

const (
	EntityFunction EntityKind = iota
	EntityClass
	EntityHeading
)

func (k EntityKind) String() string {
	switch k {
	case EntityFunction:
		return "function"
	case EntityClass:
		return "class"
	case EntityHeading:
		return "heading"
	default:
		return "unknown"
	}
}

// Entity is a named code construct detected in added diff lines.
// Entities are ephemeral; they are recomputed every run and never persisted.
type Entity struct {
	Name string
	Kind EntityKind
	File string
}

// Capability is a detected functional area of a change.
type Capability struct {
	ID       string // stable key, e.g. "ast_analysis"
	Label    string // human-readable capability name
	Impact   string // one-line business impact
	Priority int    // sort order only, higher first
}

// Relation is a directed import edge between two changed modules.
type Relation struct {
	From string
	To   string
	Type string // currently always "imports"
}

func (r Relation) String() string {
	return fmt.Sprintf("%s->%s", r.From, r.To)
}

// Role is an entity translated to its functional role for display.
type Role struct {
	Entity string
	Role   string
	Kind   EntityKind
}

// Metrics holds the numeric signals attached to a Summary.
type Metrics struct {
	OldComplexity int
	NewComplexity int
	LinesAdded    int
	LinesDeleted  int
	ValueScore    int // 0-100
}

// Net returns added minus deleted lines.
func (m Metrics) Net() int {
	return m.LinesAdded - m.LinesDeleted
}

// DeletionPercent returns deleted lines as a share of total churn, 0-100.
func (m Metrics) DeletionPercent() int {
	churn := m.LinesAdded + m.LinesDeleted
	if churn == 0 {
		return 0
	}
	return m.LinesDeleted * 100 / churn
}

// Summary is the aggregate pipeline result: a conventional-commit title and
// structured body plus everything used to build them. The Fixer mutates it in
// place; every other stage treats it as a value passed along.
type Summary struct {
	Title        string // description segment, without the type(scope): prefix
	Body         string
	Intent       Intent
	Scope        Domain
	Capabilities []Capability
	Roles        []Role
	Relations    []Relation
	Chain        string // human-readable dependency chain, e.g. "cli->diff->model"
	Metrics      Metrics
	Files        []string // deduplicated file list the summary was built from
	AppliedFixes []string // populated by the Fixer
}

// Header renders the full conventional-commit title line.
func (s *Summary) Header() string {
	return fmt.Sprintf("%s(%s): %s", s.Intent, s.Scope, s.Title)
}

// SuggestedFix names a correction the Fixer could apply for a failed gate.
type SuggestedFix struct {
	Kind   string
	Detail string
}

// ValidationResult is the outcome of running the quality gates over a Summary.
// Always freshly computed, never persisted.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Score    int // 100 - 20*errors - 5*warnings, clamped to [0,100]
	Fixes    []SuggestedFix
}
