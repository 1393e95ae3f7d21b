package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memviz/internal/explorer"
	"memviz/pkg/config"
	"memviz/pkg/logger"
)

var (
	flagURI        string
	flagUser       string
	flagPassword   string
	flagIterations int
	flagLogFile    string
)

var rootCmd = &cobra.Command{
	Use:   "memviz",
	Short: "memviz — interactive memory graph viewer",
	Long: "memviz renders the memory graph stored in Neo4j as an explorable diagram.\n" +
		"Scroll to zoom at the cursor, click and drag to pan, q to quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Flags override the environment.
		if flagURI != "" {
			cfg.Neo4jURI = flagURI
		}
		if flagUser != "" {
			cfg.Neo4jUser = flagUser
		}
		if flagPassword != "" {
			cfg.Neo4jPassword = flagPassword
		}
		if flagIterations > 0 {
			cfg.LayoutIterations = flagIterations
		}
		if flagLogFile != "" {
			cfg.LogFile = flagLogFile
		}

		// The window owns the terminal, so logs go to a file.
		if err := logger.WithLogFile(cfg.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		log := logger.Get()
		log.Info("Starting memory graph viewer",
			zap.String("uri", cfg.Neo4jURI),
		)

		message, err := explorer.DisplayGraph(context.Background(), cfg)
		if err != nil {
			log.Error("Viewer failed", zap.Error(err))
			return err
		}
		if message != "" {
			fmt.Println(message)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagURI, "uri", "", "Neo4j connection URI (default from NEO4J_URI)")
	rootCmd.Flags().StringVar(&flagUser, "user", "", "Neo4j username (default from NEO4J_USER)")
	rootCmd.Flags().StringVar(&flagPassword, "password", "", "Neo4j password (default from NEO4J_PASSWORD)")
	rootCmd.Flags().IntVar(&flagIterations, "iterations", 0, "spring layout iterations (default from VIEWER_LAYOUT_ITERATIONS)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "log output path (default from VIEWER_LOG_FILE)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
