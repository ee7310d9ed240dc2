package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the tutor in plain line mode",
	Long:  "Chat with the tutor without the full-screen UI. Type /translate, /clear or /quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return chatLoop(cmd, rt.ctrl)
	},
}

func chatLoop(cmd *cobra.Command, ctrl *session.Controller) error {
	ctx := cmd.Context()
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	if _, err := ctrl.Start(ctx); err != nil {
		return err
	}
	if ctrl.Session().AppState != session.StateHome {
		return errors.New("finish onboarding and the placement test first: run `lingo`")
	}
	if err := enterChat(cmd, ctrl); err != nil {
		return err
	}

	for _, m := range ctrl.ChatMessages() {
		printMessage(m, green, cyan)
	}

	// Replies stream through the change feed; printed tracks how much of
	// the current reply is already on screen.
	printed := 0
	unsubscribe := ctrl.Subscribe(func(ch session.Change) {
		if ch.Kind != session.ChangeChat {
			return
		}
		msgs := ctrl.ChatMessages()
		if len(msgs) == 0 {
			return
		}
		last := msgs[len(msgs)-1]
		if last.Role != chat.RoleModel || len(last.Text) <= printed {
			return
		}
		if printed == 0 {
			cyan.Print("tutor › ")
		}
		cyan.Print(last.Text[printed:])
		printed = len(last.Text)
	})
	defer unsubscribe()

	name := ctrl.Session().Profile.UserName
	yellow.Printf("Hi %s! Type in English. /translate, /clear, /quit\n", name)

	reader := bufio.NewReader(os.Stdin)
	for {
		green.Print("you › ")
		line, readErr := reader.ReadString('\n')
		input := strings.TrimSpace(line)

		switch input {
		case "":
		case "/quit", "/exit":
			return nil
		case "/clear":
			effects, err := ctrl.ClearChat(ctx)
			if err == nil {
				err = perform(cmd, ctrl, effects)
			}
			if err != nil {
				red.Println(err)
			} else {
				yellow.Println("Chat cleared.")
			}
		case "/translate":
			i := lastReply(ctrl.ChatMessages())
			if i < 0 {
				red.Println("Nothing to translate yet.")
				break
			}
			if err := ctrl.TranslateMessage(ctx, i); err != nil {
				red.Println(err)
				break
			}
			if m := ctrl.ChatMessages()[i]; m.Translation != "" {
				yellow.Println(m.Translation)
			} else {
				yellow.Println("Your UI language is English; nothing to translate.")
			}
		default:
			printed = 0
			err := ctrl.SendChat(ctx, input)
			fmt.Println()
			if err != nil {
				red.Println(err)
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

func enterChat(cmd *cobra.Command, ctrl *session.Controller) error {
	effects, err := ctrl.Navigate(session.StateChatting)
	if err != nil {
		return err
	}
	if err := perform(cmd, ctrl, effects); err != nil {
		return err
	}
	return ctrl.ChatError()
}

// perform runs effects and whatever they ask for in turn.
func perform(cmd *cobra.Command, ctrl *session.Controller, effects []session.Effect) error {
	for len(effects) > 0 {
		e := effects[0]
		next, err := ctrl.Perform(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
		effects = append(effects[1:], next...)
	}
	return nil
}

func lastReply(msgs []chat.Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == chat.RoleModel && msgs[i].Text != "" {
			return i
		}
	}
	return -1
}

func printMessage(m chat.Message, user, tutor *color.Color) {
	if m.Role == chat.RoleUser {
		user.Print("you › ")
		fmt.Println(m.Text)
		return
	}
	tutor.Printf("tutor › %s\n", m.Text)
}
