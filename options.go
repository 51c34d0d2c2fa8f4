package dawgdex

// OpenOption is a functional option for OpenDictionary and OpenGuide.
type OpenOption func(*openConfig)

type openConfig struct {
	prefault bool
}

func resolveOpenConfig(opts []OpenOption) *openConfig {
	cfg := &openConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPrefault asks the kernel to populate the mapped pages up front instead
// of faulting them in lazily on first query. Best-effort; a no-op where the
// platform offers no such hint.
func WithPrefault() OpenOption {
	return func(c *openConfig) {
		c.prefault = true
	}
}
