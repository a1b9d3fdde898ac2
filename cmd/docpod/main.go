package main

import (
	"fmt"
	"os"

	"docpod/cmd/docpod/cmd"
	"docpod/internal/config"
)

// @title docpod API
// @version 1.0
// @description Turns uploaded documents into two-speaker podcast episodes.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
