package broker

type Config struct {
	URI        string
	StreamName string `yaml:"stream_name"`
	GroupName  string `yaml:"group_name"`
}

type PublisherConfig struct {
	Timeout int `yaml:"timeout_in_ms"`
	// MaxLen caps the notice stream; older notices are trimmed.
	MaxLen int64 `yaml:"max_len"`
}
