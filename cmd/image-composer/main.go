package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ironsheep/image-composer/internal/config"
	"github.com/ironsheep/image-composer/internal/shell"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before anything else
	dir := ""
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-composer %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-composer - edit a directory of images and join them side by side")
			fmt.Println()
			fmt.Println("Usage: image-composer [options] [directory]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug    Enable debug logging\n", config.EnvLogLevel)
			fmt.Printf("  %s=<file>     YAML configuration file\n", config.EnvConfigFile)
			fmt.Println()
			fmt.Println("If a directory is given it is loaded on start. Type help at the")
			fmt.Println("prompt for the list of commands.")
			return
		default:
			dir = os.Args[1]
		}
	}

	// Logging goes to stderr so it never mixes with command output
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Image Composer v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	previewDir := filepath.Join(os.TempDir(), "image-composer")
	sh := shell.New(cfg, previewDir, os.Stdout, log.Default())
	sh.SetInteractive(term.IsTerminal(int(os.Stdin.Fd())))
	if dir != "" {
		sh.Load(dir)
	}
	if err := sh.Run(os.Stdin); err != nil {
		log.Fatalf("Shell error: %v", err)
	}
}
