package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/diarykeeper/internal/app"
	"github.com/dmitrijs2005/diarykeeper/internal/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = a.Close() }()

	a.Run(ctx, os.Stdin, os.Stdout)
}
