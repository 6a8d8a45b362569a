package commands

import (
	"errors"
	"os"

	"komari/config"
	"komari/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("komari error", "err", err.Error())
	os.Exit(1)
}

// loadConfig reads the config named by args[2] and installs its logger.
func loadConfig(args []string) *config.Config {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	return cfg
}
