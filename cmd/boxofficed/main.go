package main

import (
	"log"

	"github.com/boxoffice-api/boxoffice/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
