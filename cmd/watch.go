package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cairoverse/clin/lint"
)

// watchCmd: clin watch [dirs...]
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Relint tree dumps whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directories to watch")
			os.Exit(1)
		}

		engine, err := lint.New(resolveConfigPath())
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if err := engine.StartWatching(args...); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer func() {
			if err := engine.StopWatching(); err != nil {
				logger.Error("Failed to stop watching", zap.Error(err))
			}
		}()

		fmt.Printf("Watching %s for tree dump changes. Press Ctrl+C to stop.\n", strings.Join(args, ", "))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
	},
}
