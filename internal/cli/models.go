package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	gemini "github.com/reine-ai/gemini-go"
)

func newModelsCmd(root *rootOptions) *cobra.Command {
	var pageToken string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := root.apiKey()
			if key == "" {
				return errors.New("no API key: set --key or GEMINI_KEY")
			}
			sess := gemini.New(key, gemini.ModelGemini15Flash)
			list, err := sess.ListModels(cmd.Context(), pageToken)
			if err != nil {
				return err
			}
			for _, m := range list.Models {
				fmt.Printf("%s\t%s\t(in %d / out %d tokens)\n",
					m.Name, m.DisplayName, m.InputTokenLimit, m.OutputTokenLimit)
			}
			if list.NextPageToken != "" {
				fmt.Printf("next page: --page-token %s\n", list.NextPageToken)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pageToken, "page-token", "", "page token from a previous listing")
	return cmd
}
