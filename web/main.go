package main

import (
	"flag"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	logger := core.NewLogger(os.Stderr)
	webServer := server.NewServer(*port, logger)

	logger.Printf("Weekend Raytracer Web Server")
	logger.Printf("Try http://localhost:%d/api/render?scene=three-spheres", *port)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
