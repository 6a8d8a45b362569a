package database

type Config struct {
	URI               string
	DBName            string `yaml:"db_name"`
	Collection        string `yaml:"collection"`
	ConnectionTimeout int64  `yaml:"connection_timeout_in_ms"`
	QueryTimeout      int64  `yaml:"query_timeout_in_ms"`
}
