package main

import (
	"fmt"
	"os"

	"github.com/thereayou/whisper/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	srv, err := server.NewServer()
	if err != nil {
		return err
	}
	return srv.Run()
}
