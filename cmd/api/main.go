package main

import (
	"context"
	"log"

	"github.com/ordermesh/approval-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("approval API failed: %v", err)
	}
}
