package main

import (
	"log"

	"clientsapi/internal/app"
)

//	@title			Clients API
//	@version		1.0
//	@description	CRUD and search over an in-memory clients store.
//	@BasePath		/

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
