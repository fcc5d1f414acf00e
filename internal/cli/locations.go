package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "List locations and whether they are closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/locations"
			if open {
				path = "/api/v1/locations/open"
			}

			var result Locations
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Only locations that can still be guessed")

	return cmd
}

func newLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "location <id>",
		Short: "Show a location and its last attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLocationID(args[0])
			if err != nil {
				return err
			}

			var result LocationDetail
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/v1/locations/%d", id), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <location> <word>",
		Short: "Guess the secret word of a location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLocationID(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{"word": args[1]}
			var result GuessResult
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/locations/%d/guess", id), req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func parseLocationID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid location id %q", s)
	}
	return id, nil
}
