package analysis

import (
	"sort"
	"strings"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

// CapabilityDetector matches signature keyword sets against a change to name
// the functional areas it touches.
type CapabilityDetector struct {
	signatures []config.CapabilitySignature
}

func NewCapabilityDetector(signatures []config.CapabilitySignature) *CapabilityDetector {
	return &CapabilityDetector{signatures: signatures}
}

// Detect runs a case-insensitive substring search of every signature set over
// the diff text and file list. Each capability registers at most once; the
// result is sorted by priority descending, ties broken by id for
// determinism.
func (d *CapabilityDetector) Detect(files []string, diffText string) []model.Capability {
	haystack := strings.ToLower(diffText + " " + strings.Join(files, " "))

	seen := make(map[string]bool)
	var caps []model.Capability

	for _, sig := range d.signatures {
		if seen[sig.ID] {
			continue
		}
		for _, s := range sig.Signatures {
			if strings.Contains(haystack, strings.ToLower(s)) {
				seen[sig.ID] = true
				caps = append(caps, model.Capability{
					ID:       sig.ID,
					Label:    sig.Label,
					Impact:   sig.Impact,
					Priority: sig.Priority,
				})
				break
			}
		}
	}

	SortCapabilities(caps)
	return caps
}

// SortCapabilities orders capabilities by priority descending, then id.
func SortCapabilities(caps []model.Capability) {
	sort.SliceStable(caps, func(i, j int) bool {
		if caps[i].Priority != caps[j].Priority {
			return caps[i].Priority > caps[j].Priority
		}
		return caps[i].ID < caps[j].ID
	})
}
