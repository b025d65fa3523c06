package main

import (
	"os"

	"github.com/spf13/cobra"

	servecmder "github.com/Joseph-Bostok/TBB/cmd/tbb/serve"
)

func main() {
	root := &cobra.Command{
		Use:   "tbb",
		Short: "TBB therapy bot backend",
		Long: `TBB is the backend relay for the therapy bot. It accepts user
messages over HTTP, persists them, and forwards them to the AI
responder service.`,
		SilenceUsage: true,
	}

	root.AddCommand(servecmder.NewServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
