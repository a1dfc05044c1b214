package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Self-check the knowledge base",
	Long: `Validates the knowledge base and replays every pattern through the
detection cascade, reporting patterns that resolve to a different intent
than the one that owns them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := buildEngine()
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("knowledge base: %s\n", cfg.KnowledgeGlob)
		}

		stats := engine.Stats()
		bar := progressbar.NewOptions(stats.TotalPatterns,
			progressbar.OptionSetDescription("replaying patterns"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		type mismatch struct {
			intentID string
			language string
			pattern  string
			got      string
			conf     float64
		}
		var mismatches []mismatch
		checked := 0

		for _, in := range engine.Intents() {
			for lang, patterns := range in.Patterns {
				for _, p := range patterns {
					det, _ := engine.DetectIntent(p)
					if det.IntentID != in.ID {
						mismatches = append(mismatches, mismatch{
							intentID: in.ID,
							language: lang,
							pattern:  p,
							got:      det.IntentID,
							conf:     det.Confidence,
						})
					}
					checked++
					bar.Add(1)
				}
			}
		}
		bar.Finish()

		fmt.Printf("checked %d patterns across %d intents (kb %s)\n",
			checked, stats.TotalIntents, stats.Version)
		if len(mismatches) == 0 {
			fmt.Println("all patterns resolve to their own intent")
			return nil
		}

		for _, m := range mismatches {
			got := m.got
			if got == "" {
				got = "none"
			}
			fmt.Printf("  %s/%s %q resolved to %s (%.2f)\n",
				m.intentID, m.language, m.pattern, got, m.conf)
		}
		return fmt.Errorf("%d of %d patterns resolved to a different intent", len(mismatches), checked)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
