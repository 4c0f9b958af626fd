package main

import (
	"context"
	"log"
	"os"

	"github.com/collectivehq/collective/internal/buildinfo"
	"github.com/collectivehq/collective/internal/client/cli"
	"github.com/collectivehq/collective/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
