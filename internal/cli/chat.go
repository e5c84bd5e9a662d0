package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gemini "github.com/reine-ai/gemini-go"
	"github.com/reine-ai/gemini-go/internal/config"
)

type chatOptions struct {
	model        string
	system       string
	image        string
	conversation bool
}

func newChatCmd(root *rootOptions) *cobra.Command {
	opts := &chatOptions{}
	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send a message to a model",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), root, opts, strings.Join(args, " "))
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.model, "model", "m", "", "model id (overrides config)")
	fs.StringVar(&opts.system, "system", "", "system instruction (overrides config)")
	fs.StringVar(&opts.image, "image", "", "image path or URL to attach to the first turn")
	fs.BoolVar(&opts.conversation, "conversation", false, "keep history and read further turns from stdin")
	return cmd
}

func runChat(ctx context.Context, root *rootOptions, opts *chatOptions, prompt string) error {
	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		return err
	}
	key := root.apiKey()
	if key == "" {
		return errors.New("no API key: set --key or GEMINI_KEY")
	}

	modelStr := opts.model
	if modelStr == "" {
		modelStr = cfg.Model
	}
	if modelStr == "" {
		modelStr = "gemini-1.5-flash"
	}
	system := opts.system
	if system == "" {
		system = cfg.System
	}

	sess := gemini.New(key, gemini.ParseModel(modelStr),
		gemini.WithConversation(opts.conversation),
		gemini.WithGenerationConfig(cfg.Generation.GenerationConfig()),
		gemini.WithSystemInstruction(system),
		gemini.WithLogger(log.Logger),
	)

	attach := opts.image
	send := func(text string) error {
		var reply string
		var err error
		if attach != "" {
			reply, err = sess.SendImageMessage(ctx, attach, text)
		} else {
			reply, err = sess.SendMessage(ctx, text)
		}
		if err != nil {
			return err
		}
		attach = ""
		fmt.Println(reply)
		return nil
	}

	if prompt != "" {
		if err := send(prompt); err != nil {
			return err
		}
	}
	if !opts.conversation {
		if prompt == "" {
			return errors.New("no prompt given")
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" {
			break
		}
		if err := send(line); err != nil {
			// Keep the conversation going; the failed turn was rolled back.
			log.Error().Err(err).Msg("send failed")
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}
