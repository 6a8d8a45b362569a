package fetcher

type Config struct {
	ConnectTimeout int64 `yaml:"connect_timeout_in_ms"`
	ReadTimeout    int64 `yaml:"read_timeout_in_ms"`
}
