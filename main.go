package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"cajapyme/libro-caja/cmd/check"
	"cajapyme/libro-caja/cmd/process"
	"cajapyme/libro-caja/cmd/root"
	"cajapyme/libro-caja/internal/config"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure logging so even the earliest messages honor LOG_LEVEL
	config.ConfigureLogging()

	// 3. Initialize the root command and register the subcommands
	root.Init()

	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(check.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	// Try to find .env file in current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	// Load .env file silently without logging
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
