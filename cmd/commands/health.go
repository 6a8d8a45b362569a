package commands

import (
	"context"
	"fmt"
	"os"

	grpcRepository "komari/internal/domain/repository/grpcclient"
	"komari/internal/infrastructure/grpcclient"
	"komari/internal/infrastructure/grpcserver"
)

func HandleHealth(args []string) {
	cfg := loadConfig(args)

	client, err := grpcclient.New(cfg.GRPCClient)
	if err != nil {
		ExitOnError(err)
	}
	defer client.Close()

	if !catalogServing(client) {
		fmt.Println("NOT_SERVING") //nolint
		os.Exit(1)
	}

	fmt.Println("SERVING") //nolint
}

func catalogServing(client grpcRepository.IClient) bool {
	serving, err := client.Check(context.Background(), grpcserver.ServiceName)
	if err != nil {
		ExitOnError(err)
	}

	return serving
}
