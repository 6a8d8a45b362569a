package main

import (
	"errors"
	"fmt"
	"os"

	"komari"
	"komari/cmd/commands"
)

func main() {
	if len(os.Args) < 2 {
		commands.HandleHelp(os.Args)
		commands.ExitOnError(errors.New("at least 1 arguments expected"))
	}

	switch os.Args[1] {
	case "run":
		commands.HandleRun(os.Args)

	case "probe":
		commands.HandleProbe(os.Args)

	case "health":
		commands.HandleHealth(os.Args)

	case "notices":
		commands.HandleNotices(os.Args)

	case "help":
		commands.HandleHelp(os.Args)
		os.Exit(0)

	case "version":
		fmt.Println(komari.StringVersion()) //nolint
		os.Exit(0)

	default:
		commands.HandleHelp(os.Args)
	}
}
