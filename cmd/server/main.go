package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/kbclip/internal/buildinfo"
	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server"
	"github.com/dmitrijs2005/kbclip/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	if cfg.IssueTokenFor != "" {
		token, err := app.IssueToken(ctx, cfg.IssueTokenFor)
		if err != nil {
			log.Printf("%v", err)
			return
		}
		fmt.Println(token)
		return
	}

	buildinfo.PrintBuildData(os.Stdout)
	app.Run(ctx)

}
