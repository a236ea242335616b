package config

// Masonfile is the root of the mason.yaml configuration file.
type Masonfile struct {
	Parallelism int                `yaml:"parallelism"`
	Cache       CacheDTO           `yaml:"cache"`
	Rules       map[string]RuleDTO `yaml:"rules"`
}

// CacheDTO groups the cache tier settings.
type CacheDTO struct {
	Dir DirCacheDTO `yaml:"dir"`
	SQL SQLCacheDTO `yaml:"sql"`
}

// DirCacheDTO configures the local directory tier.
type DirCacheDTO struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SQLCacheDTO configures the SQL remote tier. Durations are Go duration
// strings ("10s", "1m30s").
type SQLCacheDTO struct {
	Enabled         bool    `yaml:"enabled"`
	DSN             string  `yaml:"dsn"`
	ReadOnly        bool    `yaml:"read_only"`
	Timeout         string  `yaml:"timeout"`
	RefreshFraction float64 `yaml:"refresh_fraction"`
	GracePeriod     string  `yaml:"grace_period"`
}

// RuleDTO is one rule definition, keyed by its full target name. A rule with
// no commands and no output is an alias grouping its deps.
type RuleDTO struct {
	Srcs      []string          `yaml:"srcs"`
	Cmd       [][]string        `yaml:"cmd"`
	Out       string            `yaml:"out"`
	Deps      []string          `yaml:"deps"`
	ExtraDeps []string          `yaml:"extra_deps"`
	Env       map[string]string `yaml:"env"`
}
