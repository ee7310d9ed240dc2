package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		all, err := s.Preferences().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("read preferences: %w", err)
		}

		label := color.New(color.FgCyan)
		missing := color.New(color.FgYellow)
		field := func(name, value string) {
			label.Printf("%-10s ", name+":")
			if value == "" {
				missing.Println("(not set)")
				return
			}
			fmt.Println(value)
		}

		lang := all[session.KeyUILanguage]
		if l, ok := i18n.Lookup(lang); ok {
			lang = fmt.Sprintf("%s (%s)", l.Name, l.Code)
		}

		field("Name", all[session.KeyUserName])
		field("Language", lang)
		field("Level", all[session.KeyEnglishLevel])
		field("Theme", all[session.KeyTheme])

		msgs, err := chat.DecodeHistory(all[session.KeyChatHistory])
		if err != nil {
			missing.Println("Chat history is unreadable:", err)
			return nil
		}
		field("Chat", fmt.Sprintf("%d messages", len(msgs)))
		return nil
	},
}
