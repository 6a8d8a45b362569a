package grpcclient

type Config struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int64  `yaml:"timeout_in_ms"`
}
