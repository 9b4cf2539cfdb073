// Command demo runs a small terminal viewer against a running alfredhub
// server: it shows the ranked feed and lets you trigger a refresh.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alfredhub/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("url", "http://localhost:8080", "alfredhub API URL")
	flag.Parse()

	m := tui.NewModel(*apiURL)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
