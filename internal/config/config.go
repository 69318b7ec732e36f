package config

// Config represents the complete apibook configuration.
// It can be loaded from .apibook/config.yml with environment variable overrides.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// DiscoveryConfig defines which source files to document and which to skip.
type DiscoveryConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// OutputConfig defines where and how documents are written.
type OutputConfig struct {
	SummaryTemplate string `yaml:"summary_template" mapstructure:"summary_template"` // path to a template containing {{toc}}
	SummaryFile     string `yaml:"summary_file" mapstructure:"summary_file"`         // navigation file name inside the output dir
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Include: []string{
				"**/*.py",
			},
			Ignore: []string{
				"__pycache__/**",
				".git/**",
				"*.pyc",
				"venv/**",
				".venv/**",
			},
		},
		Output: OutputConfig{
			SummaryTemplate: "",
			SummaryFile:     "SUMMARY.md",
		},
	}
}
