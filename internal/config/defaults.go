package config

const (
	defaultRulesDBPath    = "~/.local/share/scantidy/rules.db"
	defaultLogDir         = "~/.local/share/scantidy/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultTimeoutSeconds = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		XNAT: XNAT{
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Rules: Rules{
			DBPath: defaultRulesDBPath,
		},
		Expectations: map[string]int{},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
