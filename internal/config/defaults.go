package config

const (
	defaultDataDir                = "~/.local/share/shuttle/channels"
	defaultLogDir                 = "~/.local/share/shuttle/logs"
	defaultStoreBackend           = "file"
	defaultPollIntervalMillis     = 100
	defaultTimeoutSeconds         = 5
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultWordFrequencyTopN      = 10
	defaultWordFrequencyDelimiter = ","
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Backend: defaultStoreBackend,
		},
		Protocol: Protocol{
			PollIntervalMillis: defaultPollIntervalMillis,
			TimeoutSeconds:     defaultTimeoutSeconds,
		},
		Services: Services{
			Selection:      true,
			CaseFormat:     true,
			AggregateCount: true,
			WordFrequency:  true,
		},
		WordFrequency: WordFrequency{
			TopN:      defaultWordFrequencyTopN,
			Delimiter: defaultWordFrequencyDelimiter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
