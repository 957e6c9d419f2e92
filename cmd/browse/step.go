package main

import (
	"github.com/spf13/cobra"

	"browsebridge/action"
)

func newGotoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <url>",
		Short: "Navigate to a url. Urls not starting with http are resolved against the working directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, action.NewNavigate(args[0]))
		},
	}
}

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a browser command such as 'click(\"vid-3\")'. Multiple calls go on separate lines.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, action.NewInteractive(args[0]))
		},
	}
}

func (a *app) runOnce(cmd *cobra.Command, act action.Action) error {
	ctx := cmd.Context()
	s, err := a.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()
	obs, err := s.step(ctx, act)
	if err != nil {
		return err
	}
	return writeObservation(cmd.OutOrStdout(), obs, a.full)
}
