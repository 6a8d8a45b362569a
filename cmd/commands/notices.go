package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	brokerRepository "komari/internal/domain/repository/broker"
	"komari/internal/infrastructure/broker"
	"komari/pkg/logger"
)

// HandleNotices prints user notices from the notice stream until interrupted.
func HandleNotices(args []string) {
	cfg := loadConfig(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer client.Close()

	consumer := "notices-" + uuid.NewString()
	var receiver brokerRepository.Receiver = broker.NewReceiver(client)

	messages, err := receiver.Messages(ctx, consumer)
	if err != nil {
		ExitOnError(err)
	}

	for msg := range messages {
		fmt.Printf("%s  %s\n", msg.CreatedAt().Format(time.TimeOnly), msg.Body()) //nolint

		if err := msg.Ack(); err != nil {
			logger.Warn("failed to ack notice", "err", err)
		}
	}
}
