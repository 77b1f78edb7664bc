package config

// Entry describes one configuration key, its default and a short description.
type Entry struct {
	Key         string
	Flag        string // Command-line flag bound to the key, if any
	Value       any
	Description string
}

// DefaultEntries returns the default configuration entries.
// Each is registered as a viper default and, when Flag is set, bound to that flag.
func DefaultEntries() []Entry {
	cfg := DefaultConfig()
	return []Entry{
		{
			Key:         "output",
			Flag:        "output",
			Value:       cfg.Output,
			Description: "Directory the split files are written to",
		},
		{
			Key:         "deep",
			Flag:        "deep",
			Value:       cfg.Deep,
			Description: "Split on every outline level instead of only the top level",
		},
		{
			Key:         "merge_same_page",
			Flag:        "merge-same-page",
			Value:       cfg.MergeSamePage,
			Description: "Merge a bookmark into the deeper bookmarks starting on its page instead of dropping it",
		},
		{
			Key:         "naming",
			Flag:        "naming",
			Value:       cfg.Naming,
			Description: "File naming: sanitize or slug",
		},
		{
			Key:         "workers",
			Flag:        "workers",
			Value:       cfg.Workers,
			Description: "Number of sections extracted concurrently",
		},
		{
			Key:         "retries",
			Flag:        "retries",
			Value:       cfg.Retries,
			Description: "Extra attempts when saving a section fails",
		},
		{
			Key:         "format",
			Flag:        "format",
			Value:       cfg.Format,
			Description: "Summary output format: yaml or json",
		},
		{
			Key:         "log.level",
			Flag:        "log-level",
			Value:       cfg.Log.Level,
			Description: "Log level: debug, info, warn, error",
		},
		{
			Key:         "log.format",
			Flag:        "log-format",
			Value:       cfg.Log.Format,
			Description: "Log format: text or json",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}
