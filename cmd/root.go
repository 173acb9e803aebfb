package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/killallgit/voicenotes-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicenotes-api",
	Short: "Voice Notes API server",
	Long: `Voice Notes API - transcribes recorded audio into clean notes

The server accepts audio uploads, routes them to a speech-to-text provider,
polishes the transcript with a language model and stores recordings.

Features:
  • Transcription via Gemini, OpenAI Whisper or Deepgram Nova
  • Medical note formatting and topic detection
  • Saved recordings with audio stored locally, on S3 or in Supabase
  • Chunked sessions for long recordings`,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	addLogFlags(rootCmd)
}

func addLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

func setupLogging(cmd *cobra.Command, args []string) {
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	logging.Init(level, jsonLogs)
}

// loadConfig initializes configuration for the commands that need it.
// Logging flags set on the command line win over the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	logging.Init(logSettings(cmd, cfg.Logging))

	return cfg, nil
}

// logSettings returns the configured level and format, replaced by any
// logging flag the user set explicitly
func logSettings(cmd *cobra.Command, cfg config.LoggingConfig) (string, bool) {
	level, jsonLogs := cfg.Level, cfg.JSON
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("json-logs"); f != nil && f.Changed {
		jsonLogs, _ = cmd.Flags().GetBool("json-logs")
	}
	return level, jsonLogs
}
