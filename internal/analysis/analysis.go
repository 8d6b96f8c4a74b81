// Package analysis implements the heuristic classification passes that turn
// a git diff into entities, domains, capabilities, relations, and an intent.
// Every pass is deterministic and degrades to an empty result on malformed
// input; a failed heuristic must never block the user's git operation.
package analysis

import (
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// Result aggregates the output of all passes over one ChangeSet.
type Result struct {
	Entities      []model.Entity
	PrimaryDomain model.Domain
	ByDomain      map[model.Domain][]string
	Capabilities  []model.Capability
	Relations     []model.Relation
	Chain         string
	Intent        model.Intent
	OldComplexity int
	NewComplexity int
}

// Analyzer bundles the individual passes behind one entry point. All pattern
// tables come from the injected config; there is no package-level mutable
// state.
type Analyzer struct {
	Domains      *DomainClassifier
	Entities     *EntityExtractor
	Capabilities *CapabilityDetector
	Relations    *RelationDetector
	Intents      *IntentClassifier
}

func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		Domains:      NewDomainClassifier(cfg.DomainMapping),
		Entities:     NewEntityExtractor(cfg),
		Capabilities: NewCapabilityDetector(cfg.Capabilities),
		Relations:    NewRelationDetector(cfg.GenericNodes),
		Intents:      NewIntentClassifier(cfg),
	}
}

// Run executes every pass over the ChangeSet and aggregates the results.
// repoDir anchors the relation scanner's file reads, since changed-file
// paths are repository-root-relative; "" means the process working
// directory.
func (a *Analyzer) Run(cs *diff.ChangeSet, repoDir string) *Result {
	r := &Result{
		PrimaryDomain: a.Domains.Primary(cs.Files),
		ByDomain:      a.Domains.Categorize(cs.Files),
	}

	sections := diff.SplitRaw(cs.Raw)
	for _, f := range cs.Files {
		text, ok := sections[f]
		if !ok {
			continue
		}
		for _, e := range a.Entities.Extract(f, text) {
			if len(r.Entities) >= MaxEntities {
				break
			}
			r.Entities = append(r.Entities, e)
		}
	}

	r.Capabilities = a.Capabilities.Detect(cs.Files, cs.Raw)
	r.Relations = a.Relations.Detect(repoDir, cs.Files)
	r.Chain = Chain(r.Relations)
	r.Intent = a.Intents.Classify(cs.Files, r.Entities, cs.Added, cs.Deleted)
	r.OldComplexity, r.NewComplexity = EstimateComplexity(cs.Raw)

	return r
}
