package analysis

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gitgoal/gitgoal/internal/model"
)

// MaxRelations caps the retained dependency edges.
const MaxRelations = 10

// Import statement forms recognized during relation scanning.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`from\s+\.?(\w+)\s+import`),      // python: from x import y
	regexp.MustCompile(`^\s*import\s+\.?(\w+)`),         // python: import x
	regexp.MustCompile(`from\s+['"]\.?/?(\w+)['"]`),     // js/ts: from './x'
	regexp.MustCompile(`require\(['"]\.?/?(\w+)['"]\)`), // js: require('./x')
	regexp.MustCompile(`"[\w./-]*/(\w+)"`),              // go: "module/pkg/x"
}

// RelationDetector derives an import graph between changed files by scanning
// their on-disk content. Unreadable files are skipped silently; an empty file
// list yields an empty graph.
type RelationDetector struct {
	generic map[string]bool

	// readFile is swappable for tests.
	readFile func(string) ([]byte, error)
}

func NewRelationDetector(genericNodes []string) *RelationDetector {
	generic := make(map[string]bool, len(genericNodes))
	for _, n := range genericNodes {
		generic[n] = true
	}
	return &RelationDetector{generic: generic, readFile: os.ReadFile}
}

// Detect builds the relation list for the changed files: edges from importer
// stem to imported stem, generic nodes filtered, deduplicated, capped at
// MaxRelations, sorted deterministically. Changed-file paths are relative to
// the repository root, so reads are anchored at repoDir; an empty repoDir
// falls back to the process working directory.
func (d *RelationDetector) Detect(repoDir string, files []string) []model.Relation {
	stems := make(map[string]string, len(files)) // stem -> path
	for _, f := range files {
		stems[stem(f)] = f
	}

	var relations []model.Relation
	for _, f := range files {
		path := f
		if repoDir != "" {
			path = filepath.Join(repoDir, f)
		}
		content, err := d.readFile(path)
		if err != nil {
			continue
		}

		from := stem(f)
		for _, line := range strings.Split(string(content), "\n") {
			for _, re := range importPatterns {
				m := re.FindStringSubmatch(line)
				if len(m) < 2 {
					continue
				}
				to := m[1]
				if to == from {
					continue // no self-loops
				}
				if _, changed := stems[to]; changed {
					relations = append(relations, model.Relation{From: from, To: to, Type: "imports"})
				}
			}
		}
	}

	relations, _ = d.FilterGenericNodes(relations)
	relations, _ = DedupeRelations(relations)
	if len(relations) > MaxRelations {
		relations = relations[:MaxRelations]
	}
	sortRelations(relations)
	return relations
}

// FilterGenericNodes drops edges touching a blocklisted node name, returning
// the filtered list and the number removed. Applied before dedup counts are
// computed.
func (d *RelationDetector) FilterGenericNodes(relations []model.Relation) ([]model.Relation, int) {
	var kept []model.Relation
	for _, r := range relations {
		if d.generic[r.From] || d.generic[r.To] {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(relations) - len(kept)
}

// GenericCount returns how many relations touch a generic node.
func (d *RelationDetector) GenericCount(relations []model.Relation) int {
	n := 0
	for _, r := range relations {
		if d.generic[r.From] || d.generic[r.To] {
			n++
		}
	}
	return n
}

// DedupeRelations removes duplicate (from, to) edges and self-loops,
// preserving first-seen order and capping at MaxRelations. Idempotent.
// Returns the deduplicated list and the number of true duplicates dropped;
// self-loops and cap truncation do not count toward the duplicate total.
func DedupeRelations(relations []model.Relation) ([]model.Relation, int) {
	type edge struct{ from, to string }
	seen := make(map[edge]bool, len(relations))

	dups := 0
	var unique []model.Relation
	for _, r := range relations {
		if r.From == r.To {
			continue
		}
		e := edge{r.From, r.To}
		if seen[e] {
			dups++
			continue
		}
		seen[e] = true
		unique = append(unique, r)
	}

	if len(unique) > MaxRelations {
		unique = unique[:MaxRelations]
	}
	return unique, dups
}

func sortRelations(relations []model.Relation) {
	sort.SliceStable(relations, func(i, j int) bool {
		if relations[i].From != relations[j].From {
			return relations[i].From < relations[j].From
		}
		return relations[i].To < relations[j].To
	})
}

// Chain renders the relation graph as human-readable chains walked from root
// nodes (nodes with no incoming edge). Successor ties break lexicographically
// so the output is deterministic.
func Chain(relations []model.Relation) string {
	if len(relations) == 0 {
		return ""
	}

	adj := make(map[string][]string)
	hasIncoming := make(map[string]bool)
	var sources []string
	seenSource := make(map[string]bool)

	for _, r := range relations {
		adj[r.From] = append(adj[r.From], r.To)
		hasIncoming[r.To] = true
		if !seenSource[r.From] {
			seenSource[r.From] = true
			sources = append(sources, r.From)
		}
	}
	for from := range adj {
		sort.Strings(adj[from])
	}

	var roots []string
	for _, s := range sources {
		if !hasIncoming[s] {
			roots = append(roots, s)
		}
	}
	if len(roots) == 0 {
		roots = sources
	}
	sort.Strings(roots)

	var chains []string
	for _, root := range roots {
		chain := []string{root}
		visited := map[string]bool{root: true}
		current := root
		for {
			next := ""
			for _, succ := range adj[current] {
				if !visited[succ] {
					next = succ
					break
				}
			}
			if next == "" {
				break
			}
			chain = append(chain, next)
			visited[next] = true
			current = next
		}
		chains = append(chains, strings.Join(chain, "->"))
	}

	return strings.Join(chains, ", ")
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
