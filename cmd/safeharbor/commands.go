package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	safeharbor "github.com/branched-services/go-safeharbor"
)

const (
	formatJSON     = "json"
	formatSolidity = "solidity"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		format    string
		unwrapped bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the multicall payload that updates the agreement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatSolidity {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatSolidity)
			}
			p, done, err := a.pipeline(cmd)
			if err != nil {
				return err
			}
			defer done()

			var result *safeharbor.Result
			if unwrapped || format == formatSolidity {
				result, err = p.RunUnwrapped(cmd.Context())
			} else {
				result, err = p.Run(cmd.Context())
			}
			if err != nil {
				return err
			}
			if result.None() {
				log.Info("No changes required")
				return writeJSON(cmd.OutOrStdout(), map[string]any{"kind": safeharbor.ResultNone.String()})
			}
			if format == formatSolidity {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), safeharbor.RenderSolidity(result.Operations()))
				return err
			}
			if result.Kind == safeharbor.ResultUpdates {
				return writeJSON(cmd.OutOrStdout(), result.Updates)
			}
			return writeJSON(cmd.OutOrStdout(), result.Payload)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or solidity")
	cmd.Flags().BoolVar(&unwrapped, "unwrapped", false, "Print the individual updates instead of the multicall payload")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the updates for review, without per-call calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := a.pipeline(cmd)
			if err != nil {
				return err
			}
			defer done()

			result, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			if result.None() {
				log.Info("No changes required")
				return writeJSON(cmd.OutOrStdout(), map[string]any{"kind": safeharbor.ResultNone.String()})
			}
			ops := result.Operations()
			slim := make([]*safeharbor.UpdateOperation, len(ops))
			for i, op := range ops {
				slim[i] = op.WithoutCalldata()
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"updates":   slim,
				"multicall": result.Payload,
				"warnings":  result.Warnings,
			})
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <calldata>",
		Short: "Check calldata against a freshly generated payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := safeharbor.ParseCalldata(args[0]); err != nil {
				return err
			}
			p, done, err := a.pipeline(cmd)
			if err != nil {
				return err
			}
			defer done()

			log.Info("Starting calldata verification")
			v, err := safeharbor.Verify(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if v.Matches {
				fmt.Fprintln(out, "VERIFICATION PASSED")
				return nil
			}
			fmt.Fprintln(out, "VERIFICATION FAILED")
			fmt.Fprintf(out, "\nExpected calldata:\n%s\n", encodeOrNone(v.Expected))
			fmt.Fprintf(out, "\nProvided calldata:\n%s\n", hexutil.Encode(v.Provided))
			for _, m := range v.Mismatches() {
				fmt.Fprintf(out, "\ncall %d:\n  expected: %s\n  provided: %s\n", m.Index, m.Expected, m.Provided)
			}
			return errMismatch
		},
	}
}

func encodeOrNone(b []byte) string {
	if b == nil {
		return "(no changes required)"
	}
	return hexutil.Encode(b)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
