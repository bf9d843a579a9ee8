package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	input string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List suspect dialogues and the keyword that flagged them",
	RunE:  runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVarP(&checkFlags.input, "input", "i", "", "Input dataset JSON (default $SIEVE_INPUT)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	input := firstNonEmpty(checkFlags.input, cfg.Input)
	if input == "" {
		return fmt.Errorf("--input is required (or set SIEVE_INPUT)")
	}

	findings, total, err := newRunner(cmd, true).Check(cmd.Context(), input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintf(out, "No suspect dialogues in %d records.\n", total)
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"dialogue_id", "doctor keyword"})
	for _, f := range findings {
		tw.AppendRow(table.Row{f.DialogueID, f.DoctorKeyword})
	}
	fmt.Fprintln(out, tw.Render())
	fmt.Fprintf(out, "\n%d of %d dialogues suspect\n", len(findings), total)
	return nil
}
