package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Turtyo/rayTracing3D/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("rayTracing3D web server")
	log.Printf("Render a scene at http://localhost:%d/api/render?scene=some-spheres", *port)

	if err := server.NewServer(*port).Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Error running server: %v", err)
		os.Exit(1)
	}
}
