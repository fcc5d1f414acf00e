package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steal",
		Short: "List the players you could rob this turn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StealOptions
			if err := client.Get(cmd.Context(), "/api/v1/steal", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newRobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rob <player-id>",
		Short: "Roll the die to rob a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StealResult
			if err := client.Post(cmd.Context(), "/api/v1/steal/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}
