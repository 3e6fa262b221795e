package main

import (
	"log"

	"github.com/futig/vertex-rag-services/internal/builder"
)

func main() {
	app, err := builder.BuildCorpusManager()
	if err != nil {
		log.Fatal("Failed to build corpus manager:", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Application error:", err)
	}
}
