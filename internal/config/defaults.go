package config

// Default returns the built-in configuration. Callers get a fresh copy and
// may mutate it freely.
func Default() *Config {
	return &Config{
		DomainMapping: []DomainRule{
			{Pattern: "tests/**", Domain: "test"},
			{Pattern: "test/**", Domain: "test"},
			{Pattern: "**/*_test.go", Domain: "test"},
			{Pattern: "internal/**/*.go", Domain: "core"},
			{Pattern: "src/**", Domain: "core"},
			{Pattern: "lib/**", Domain: "core"},
			{Pattern: "app/**", Domain: "app"},
			{Pattern: "api/**", Domain: "api"},
			{Pattern: "cmd/**", Domain: "core"},
			{Pattern: "docs/**", Domain: "docs"},
			{Pattern: "*.md", Domain: "docs"},
			{Pattern: "*.rst", Domain: "docs"},
			{Pattern: "go.mod", Domain: "build"},
			{Pattern: "go.sum", Domain: "build"},
			{Pattern: "pyproject.toml", Domain: "build"},
			{Pattern: "setup.py", Domain: "build"},
			{Pattern: "package.json", Domain: "build"},
			{Pattern: "Cargo.toml", Domain: "build"},
			{Pattern: "Makefile", Domain: "build"},
			{Pattern: "goal.yaml", Domain: "config"},
			{Pattern: ".github/**", Domain: "ci"},
			{Pattern: ".gitlab-ci.yml", Domain: "ci"},
			{Pattern: "Dockerfile", Domain: "docker"},
			{Pattern: "docker-compose.yml", Domain: "docker"},
		},

		Parsers: map[string]ParserRule{
			"python": {
				Extract:       []string{"def ", "class ", "async def "},
				Ignore:        []string{"import ", "from ", "#", `"""`, "'''"},
				EntityPattern: `(?:def|class)\s+(\w+)`,
			},
			"javascript": {
				Extract:       []string{"function ", "const ", "class ", "export "},
				Ignore:        []string{"import ", "//", "/*", "*/"},
				EntityPattern: `(?:function|class|const)\s+(\w+)`,
			},
			"typescript": {
				Extract:       []string{"function ", "const ", "class ", "interface ", "type ", "export "},
				Ignore:        []string{"import ", "//", "/*", "*/"},
				EntityPattern: `(?:function|class|const|interface|type)\s+(\w+)`,
			},
			"rust": {
				Extract:       []string{"fn ", "struct ", "enum ", "impl ", "pub ", "mod "},
				Ignore:        []string{"//", "/*", "*/", "use "},
				EntityPattern: `(?:fn|struct|enum|impl|mod)\s+(\w+)`,
			},
			"go": {
				Extract:       []string{"func ", "type "},
				Ignore:        []string{"//", "/*", "*/", "import "},
				EntityPattern: `(?:func|type)\s+(?:\([^)]*\)\s*)?(\w+)`,
			},
			"ruby": {
				Extract:       []string{"def ", "class ", "module "},
				Ignore:        []string{"#", "require "},
				EntityPattern: `(?:def|class|module)\s+(\w+)`,
			},
		},

		Extensions: map[string]string{
			".py":  "python",
			".js":  "javascript",
			".jsx": "javascript",
			".ts":  "typescript",
			".tsx": "typescript",
			".rs":  "rust",
			".go":  "go",
			".rb":  "ruby",
			".md":  "markdown",
			".rst": "markdown",
		},

		BannedTitleWords: []string{
			"add", "logging", "testing", "performance", "update",
			"improve", "fix", "misc", "various", "some", "stuff",
		},

		MetricIndicators: []string{"NET", "Relations:", "%", "score", "complexity"},

		GenericNodes: []string{
			"base", "utils", "util", "__init__", "common", "constants",
			"types", "exceptions", "models", "schemas", "helpers", "main",
		},

		NoisePatterns: []string{
			`^_`,
			`_helper$`,
			`_internal$`,
			`^_get_.*_name$`,
		},

		MarkdownNoise: []string{
			`^\[.*\d+\.\d+.*\]`,
			`^\d{4}-\d{2}-\d{2}`,
			`^(Added|Changed|Deprecated|Removed|Fixed|Security)$`,
			`^(Changelog|CHANGELOG|Change\s*Log)`,
			`^(Unreleased|\[Unreleased\])`,
			`^v?\d+\.\d+`,
			`^Table of Contents`,
			`^#+$`,
		},

		RefactorPatterns: []string{
			`analyzer`, `deep_`, `enhanced_`, `refactor`,
			`restructure`, `reorganize`, `simplif`, `clean`,
		},
		FeatPatterns: []string{
			`new_`, `initial`, `support`, `implement`, `create`, `push`, `handler`,
		},
		FixPatterns: []string{
			`fix`, `bug`, `issue`, `error`, `patch`, `hotfix`,
		},

		Capabilities: []CapabilitySignature{
			{
				ID:         "ast_analysis",
				Signatures: []string{"ast.parse", "ast.walk", "tree-sitter", "go/ast", "analyzer"},
				Label:      "deep code analysis engine",
				Impact:     "intelligent change detection",
				Priority:   10,
			},
			{
				ID:         "quality_metrics",
				Signatures: []string{"cyclomatic", "complexity", "coverage", "metrics", "score"},
				Label:      "code quality metrics",
				Impact:     "maintainability tracking",
				Priority:   8,
			},
			{
				ID:         "multi_language",
				Signatures: []string{"language", "parser", "lexer", "extension_to_language"},
				Label:      "multi-language support",
				Impact:     "universal code analysis",
				Priority:   7,
			},
			{
				ID:         "dependency_graph",
				Signatures: []string{"relations", "dependencies", "graph", "imports"},
				Label:      "code relationship mapping",
				Impact:     "architecture understanding",
				Priority:   6,
			},
			{
				ID:         "cli_interface",
				Signatures: []string{"cobra", "command", "flag", "argument", "cli"},
				Label:      "CLI interface",
				Impact:     "improved user experience",
				Priority:   5,
			},
			{
				ID:         "output_formatting",
				Signatures: []string{"markdown", "format", "render", "template"},
				Label:      "output formatting",
				Impact:     "readable reports",
				Priority:   4,
			},
			{
				ID:         "config_system",
				Signatures: []string{"yaml", "config", "settings", "viper"},
				Label:      "configuration management",
				Impact:     "customizable workflows",
				Priority:   3,
			},
			{
				ID:         "changelog",
				Signatures: []string{"changelog", "CHANGELOG", "release"},
				Label:      "changelog generation",
				Impact:     "release documentation",
				Priority:   2,
			},
		},

		Roles: []RolePattern{
			{Pattern: `(?i)ChangeAnalyzer`, Role: "change detection engine"},
			{Pattern: `(?i)analyze.*diff`, Role: "diff analysis engine"},
			{Pattern: `(?i)aggregate`, Role: "change aggregator"},
			{Pattern: `(?i)detect.*relations`, Role: "dependency graph builder"},
			{Pattern: `(?i)generate.*summary`, Role: "summary generator"},
			{Pattern: `(?i)generate.*message`, Role: "commit message generator"},
			{Pattern: `(?i)infer.*value`, Role: "value inference engine"},
			{Pattern: `(?i)load.*config`, Role: "config loader"},
			{Pattern: `(?i)save.*config`, Role: "config persistence"},
			{Pattern: `(?i)^main$`, Role: "entry point"},
			{Pattern: `(?i)^push`, Role: "push workflow"},
			{Pattern: `(?i)^commit`, Role: "commit workflow"},
			{Pattern: `(?i)complexity`, Role: "complexity analyzer"},
			{Pattern: `(?i)Handler$`, Role: "request handler"},
			{Pattern: `(?i)Manager$`, Role: "resource manager"},
			{Pattern: `(?i)Factory$`, Role: "object factory"},
			{Pattern: `(?i)Builder$`, Role: "builder"},
			{Pattern: `(?i)Validator$`, Role: "input validator"},
			{Pattern: `(?i)Parser$`, Role: "parser"},
			{Pattern: `(?i)Generator$`, Role: "generator"},
			{Pattern: `(?i)Analyzer$`, Role: "analyzer"},
			{Pattern: `^test`, Role: "test case"},
		},

		Subsystems: []SubsystemRule{
			{Stems: []string{"analyzer", "analysis"}, Title: "code analysis engine"},
			{Stems: []string{"commit"}, Title: "commit message generation system"},
			{Stems: []string{"changelog"}, Title: "changelog generation system"},
			{Stems: []string{"registry", "manifest", "version"}, Title: "release version tooling"},
		},

		Gates: Gates{
			MinDescriptionWords:  3,
			MinCapabilities:      1,
			MaxGenericNodes:      1,
			MaxDuplicates:        0,
			RequiredMetrics:      2,
			MaxComplexityPercent: 200,
		},

		Intent: IntentThresholds{
			MassiveDeletion:     1000,
			LargeDeletion:       250,
			DeletionRatio:       0.20,
			NetDrop:             100,
			RefactorTieDeletion: 100,
			ManyFiles:           10,
		},

		Changelog: Changelog{
			Path:        "CHANGELOG.md",
			MaxEntities: 5,
			IncludeHash: true,
		},

		Registry: Registry{
			Ecosystem:      "pypi",
			TimeoutSeconds: 10,
		},
	}
}
