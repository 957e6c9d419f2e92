package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"browsebridge/action"
	"browsebridge/utils/printx"
)

const shellHelp = `Commands:
  url <url>   navigate to url
  log         write the trajectory to the log path
  exit        quit
Anything else is sent to the browser as a command, e.g. click("vid-3").`

func newShellCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive browse session.",
		Args:  cobra.NoArgs,
		RunE:  a.runShell,
	}
	cmd.Flags().StringVar(&a.logPath, "log-path", "trajectory.json", "where the log command writes the trajectory")
	return cmd
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	s, err := a.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "browse> ")
ScannerLoop:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var act action.Action
		switch {
		case line == "":
			fmt.Fprint(out, "browse> ")
			continue ScannerLoop
		case line == "exit":
			fmt.Fprintln(out, "\nexiting...")
			break ScannerLoop
		case line == "help":
			printx.FprintInColor(out, printx.ColorGray, shellHelp)
			fmt.Fprint(out, "browse> ")
			continue ScannerLoop
		case line == "log":
			if err := s.trajectory.Log(a.logPath); err != nil {
				printx.FprintInColor(out, printx.ColorYellow, fmt.Sprintf("Failed to log trajectory: %s", err))
			} else {
				printx.FprintInColor(out, printx.ColorGray, "Logged the trajectory to "+a.logPath+".")
			}
			fmt.Fprint(out, "browse> ")
			continue ScannerLoop
		case strings.HasPrefix(line, "url "):
			act = action.NewNavigate(strings.TrimSpace(strings.TrimPrefix(line, "url ")))
		default:
			act = action.NewInteractive(line)
		}

		obs, err := s.step(ctx, act)
		if err != nil {
			printx.FprintInColor(out, printx.ColorRed, err.Error())
		} else if a.full {
			fmt.Fprintln(out, obs.GetText())
		} else {
			fmt.Fprintln(out, obs.GetAbbreviatedText())
		}
		fmt.Fprint(out, "browse> ")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	printx.FprintStandardHeader(out, "TRAJECTORY")
	fmt.Fprintln(out, s.trajectory.GetText())
	return nil
}
