package commands

import (
	"context"
	"errors"
	"fmt"

	"komari/internal/application/usecase"
	"komari/internal/domain/result"
	"komari/internal/infrastructure/database"
)

// HandleProbe runs one connection test against the catalog and exits with a
// non-zero status when it fails.
func HandleProbe(args []string) {
	cfg := loadConfig(args)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer db.Stop() //nolint

	gateway := usecase.NewGateway(database.NewWallpaperFinder(db), database.NewWallpaperRetriever(db))

	var last result.Result[int] = result.Loading[int]{}
	for r := range gateway.Probe(context.Background()) {
		last = r
	}

	err = result.Match(last,
		func() error { return errors.New("probe ended without a result") },
		func(n int) error {
			fmt.Printf("connection ok, sampled %d wallpapers\n", n) //nolint

			return nil
		},
		func(err error) error { return err },
	)
	if err != nil {
		_ = db.Stop()
		ExitOnError(err)
	}
}
