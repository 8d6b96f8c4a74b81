// Package config loads goal.yaml and supplies the pattern tables and
// thresholds the analysis pipeline runs on. Every table has a compiled-in
// default; missing or malformed keys fall back silently so a bad config can
// never block the user's git workflow.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-repo configuration file gitgoal looks for.
const ConfigFileName = "goal.yaml"

// DomainRule maps a glob pattern to a domain label. Rules are evaluated in
// order; the first match wins.
type DomainRule struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Domain  string `mapstructure:"domain" yaml:"domain"`
}

// ParserRule drives entity extraction for one language.
type ParserRule struct {
	Extract       []string `mapstructure:"extract" yaml:"extract"`
	Ignore        []string `mapstructure:"ignore" yaml:"ignore"`
	EntityPattern string   `mapstructure:"entity_pattern" yaml:"entity_pattern"`
}

// CapabilitySignature declares one detectable functional area. Signatures are
// evaluated in table order so precedence is explicit.
type CapabilitySignature struct {
	ID         string   `mapstructure:"id" yaml:"id"`
	Signatures []string `mapstructure:"signatures" yaml:"signatures"`
	Label      string   `mapstructure:"label" yaml:"label"`
	Impact     string   `mapstructure:"impact" yaml:"impact"`
	Priority   int      `mapstructure:"priority" yaml:"priority"`
}

// RolePattern maps an entity-name regex to a functional role, first match wins.
type RolePattern struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Role    string `mapstructure:"role" yaml:"role"`
}

// SubsystemRule names a subsystem when any of its stem substrings appear in
// the changed file stems. Used for the highest-priority title form.
type SubsystemRule struct {
	Stems []string `mapstructure:"stems" yaml:"stems"`
	Title string   `mapstructure:"title" yaml:"title"`
}

// Gates holds the quality-gate thresholds.
type Gates struct {
	MinDescriptionWords  int `mapstructure:"min_description_words" yaml:"min_description_words"`
	MinCapabilities      int `mapstructure:"min_capabilities" yaml:"min_capabilities"`
	MaxGenericNodes      int `mapstructure:"max_generic_nodes" yaml:"max_generic_nodes"`
	MaxDuplicates        int `mapstructure:"max_duplicates" yaml:"max_duplicates"`
	RequiredMetrics      int `mapstructure:"required_metrics" yaml:"required_metrics"`
	MaxComplexityPercent int `mapstructure:"max_complexity_percent" yaml:"max_complexity_percent"`
}

// IntentThresholds are the churn constants the intent classifier keys on.
// They are empirically tuned values, not derived statistically; treat them as
// tunable configuration rather than load-bearing truths.
type IntentThresholds struct {
	MassiveDeletion     int     `mapstructure:"massive_deletion" yaml:"massive_deletion"`
	LargeDeletion       int     `mapstructure:"large_deletion" yaml:"large_deletion"`
	DeletionRatio       float64 `mapstructure:"deletion_ratio" yaml:"deletion_ratio"`
	NetDrop             int     `mapstructure:"net_drop" yaml:"net_drop"`
	RefactorTieDeletion int     `mapstructure:"refactor_tie_deletion" yaml:"refactor_tie_deletion"`
	ManyFiles           int     `mapstructure:"many_files" yaml:"many_files"`
}

// Changelog controls changelog entry generation.
type Changelog struct {
	Path        string `mapstructure:"path" yaml:"path"`
	MaxEntities int    `mapstructure:"max_entities" yaml:"max_entities"`
	IncludeHash bool   `mapstructure:"include_hash" yaml:"include_hash"`
}

// Registry controls the single-shot latest-version lookup.
type Registry struct {
	Ecosystem      string `mapstructure:"ecosystem" yaml:"ecosystem"` // pypi, npm, crates
	Package        string `mapstructure:"package" yaml:"package"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Config is the fully resolved configuration passed into each component.
type Config struct {
	DomainMapping    []DomainRule          `mapstructure:"domain_mapping" yaml:"domain_mapping"`
	Parsers          map[string]ParserRule `mapstructure:"code_parsers" yaml:"code_parsers"`
	Extensions       map[string]string     `mapstructure:"extensions" yaml:"extensions"` // ext -> language
	BannedTitleWords []string              `mapstructure:"banned_title_words" yaml:"banned_title_words"`
	MetricIndicators []string              `mapstructure:"metric_indicators" yaml:"metric_indicators"`
	GenericNodes     []string              `mapstructure:"generic_nodes" yaml:"generic_nodes"`
	NoisePatterns    []string              `mapstructure:"noise_patterns" yaml:"noise_patterns"`
	MarkdownNoise    []string              `mapstructure:"markdown_noise" yaml:"markdown_noise"`
	RefactorPatterns []string              `mapstructure:"refactor_patterns" yaml:"refactor_patterns"`
	FeatPatterns     []string              `mapstructure:"feat_patterns" yaml:"feat_patterns"`
	FixPatterns      []string              `mapstructure:"fix_patterns" yaml:"fix_patterns"`
	Capabilities     []CapabilitySignature `mapstructure:"capabilities" yaml:"capabilities"`
	Roles            []RolePattern         `mapstructure:"roles" yaml:"roles"`
	Subsystems       []SubsystemRule       `mapstructure:"subsystems" yaml:"subsystems"`
	Gates            Gates                 `mapstructure:"quality_gates" yaml:"quality_gates"`
	Intent           IntentThresholds      `mapstructure:"intent_thresholds" yaml:"intent_thresholds"`
	Changelog        Changelog             `mapstructure:"changelog" yaml:"changelog"`
	Registry         Registry              `mapstructure:"registry" yaml:"registry"`
}

// Load resolves configuration for the given directory. It walks from dir to
// the filesystem root looking for goal.yaml; if none is found, or the file is
// unreadable, the defaults are returned. Individual missing keys keep their
// default values.
func Load(dir string) *Config {
	cfg := Default()

	path := findConfig(dir)
	if path == "" {
		return cfg
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		// Configuration errors are never fatal.
		return cfg
	}

	merge(cfg, v)
	return cfg
}

// merge overlays the keys present in v onto cfg. Only keys that are actually
// set replace the defaults, so a sparse goal.yaml works.
func merge(cfg *Config, v *viper.Viper) {
	overlayList := func(key string, dst any) {
		if v.IsSet(key) {
			_ = v.UnmarshalKey(key, dst)
		}
	}

	overlayList("domain_mapping", &cfg.DomainMapping)
	overlayList("code_parsers", &cfg.Parsers)
	overlayList("extensions", &cfg.Extensions)
	overlayList("banned_title_words", &cfg.BannedTitleWords)
	overlayList("metric_indicators", &cfg.MetricIndicators)
	overlayList("generic_nodes", &cfg.GenericNodes)
	overlayList("noise_patterns", &cfg.NoisePatterns)
	overlayList("markdown_noise", &cfg.MarkdownNoise)
	overlayList("refactor_patterns", &cfg.RefactorPatterns)
	overlayList("feat_patterns", &cfg.FeatPatterns)
	overlayList("fix_patterns", &cfg.FixPatterns)
	overlayList("capabilities", &cfg.Capabilities)
	overlayList("roles", &cfg.Roles)
	overlayList("subsystems", &cfg.Subsystems)
	overlayList("quality_gates", &cfg.Gates)
	overlayList("intent_thresholds", &cfg.Intent)
	overlayList("changelog", &cfg.Changelog)
	overlayList("registry", &cfg.Registry)
}

// findConfig walks upward from dir looking for goal.yaml.
func findConfig(dir string) string {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// WriteDefault writes the default configuration to path. Unless overwrite is
// set, an existing file is refused.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	header := "# gitgoal configuration. Every key is optional; missing keys use built-in defaults.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
