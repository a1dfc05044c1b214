package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamzasdq/earnlybot/internal/chatbot"
	"github.com/hamzasdq/earnlybot/internal/config"
	"github.com/hamzasdq/earnlybot/internal/knowledge"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "earnlybot",
	Short: "Support chatbot for the Earnly earning platform",
	Long: `Earnlybot answers customer-support questions about earning, referrals,
tasks and withdrawals in English and Roman Urdu. It classifies messages
with a rule/statistics hybrid (pattern matching, fuzzy matching,
character n-grams and TF-IDF similarity) against a static knowledge
base, with no external AI service involved.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".earnlybot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// buildEngine loads config and knowledge base and wires a fresh engine.
func buildEngine() (*chatbot.Engine, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating config: %w", err)
	}

	kb, err := knowledge.LoadGlob(cfg.KnowledgeGlob)
	if err != nil {
		return nil, nil, fmt.Errorf("loading knowledge base: %w", err)
	}

	return chatbot.NewEngine(kb, chatbot.NewContextStore()), cfg, nil
}
