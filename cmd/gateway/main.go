package main

import (
	"context"
	"log"

	"github.com/goodabcdef/blog-term/internal/gateway"
	"github.com/goodabcdef/blog-term/internal/gateway/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := gateway.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
