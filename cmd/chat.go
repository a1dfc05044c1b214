package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var chatUserName string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot from the terminal",
	Long:  `Runs an interactive chat session against an in-process engine. Type "exit" to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := buildEngine()
		if err != nil {
			return err
		}

		sessionID := uuid.New().String()
		fmt.Println("Chatting with earnlybot. Type \"exit\" to quit.")
		fmt.Println()

		for {
			prompt := promptui.Prompt{Label: chatUserName}
			input, err := prompt.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				return fmt.Errorf("reading input: %w", err)
			}
			if input == "exit" || input == "quit" {
				return nil
			}
			if input == "" {
				continue
			}

			resp := engine.ProcessMessage(input, chatUserName, "cli", sessionID)
			fmt.Printf("bot> %s\n", resp.Response)
			if verbose {
				fmt.Printf("     intent=%s confidence=%.2f lang=%s sentiment=%s\n",
					resp.Intent, resp.Confidence, resp.Language, resp.Sentiment)
				if len(resp.SuggestedActions) > 0 {
					fmt.Printf("     suggestions=%v\n", resp.SuggestedActions)
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatUserName, "name", "User", "name the bot addresses you by")
	rootCmd.AddCommand(chatCmd)
}
