package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/askhubdev/askhub/backend/internal/server"
)

func main() {
	srv := server.NewServer()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
