package commands

import "fmt"

const help = `komari, a curated wallpaper catalog service.

usage:
  komari run <config>      start the HTTP API and gRPC health server
  komari probe <config>    run a connection test against the catalog and exit
  komari health <config>   ask a running server for its catalog health
  komari notices <config>  print user notices as they are published
  komari version           print the version
  komari help              print this help`

func HandleHelp(_ []string) {
	fmt.Println(help) //nolint
}
