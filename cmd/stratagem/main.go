package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	providerName string
	modelName    string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stratagem",
	Short: "stratagem - conversational 90-day marketing strategist",
	Long: `stratagem is a conversational marketing strategist.

It holds a discovery conversation about your product, and once you confirm
the gathered details it researches competitors, market trends, and case
studies on the web, then produces a validated 90-day marketing strategy.

Run without arguments to start an interactive consulting session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsult(cmd)
	},
}

var consultCmd = &cobra.Command{
	Use:   "consult [message]",
	Short: "Run one consulting turn, or an interactive session",
	Long: `With a message argument, runs a single consulting turn and exits:
the reply is either the strategist's next question or, if the message
carries a confirmed picture of the product, the generated strategy.
Without arguments this is the same interactive session as the root command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runConsultOnce(cmd, args[0])
		}
		return runConsult(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stratagem v0.1.0")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "completion provider (groq, gemini)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "model name override")
	rootCmd.AddCommand(consultCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
