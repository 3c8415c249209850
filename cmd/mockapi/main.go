package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/sgrsensor/internal/mockapi"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := mockapi.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("mock api: %v", err)
	}

}
