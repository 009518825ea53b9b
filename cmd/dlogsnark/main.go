// Package main provides a CLI for generating and verifying
// discrete logarithm proofs on BabyJubJub.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sp301415/dlog-snark/dlog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := newViper()
	var configPath string
	var cfg *Config

	rootCmd := &cobra.Command{
		Use:   "dlogsnark",
		Short: "Groth16 proofs of knowledge of a BabyJubJub discrete logarithm",
		Long: `dlogsnark proves knowledge of x such that H = x * G on BabyJubJub,
using Groth16 over BN254.

Parameters are generated from a single seed. Anyone who knows the seed
can forge proofs, so generated parameters are for testing only.

Every command prints a JSON object on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}

			var err error
			if cfg, err = GetConfig(v, configPath); err != nil {
				return err
			}
			if err := setupLogger(cfg, stderr); err != nil {
				return err
			}
			dlog.SetLogger(log.With().Str("module", "dlog").Logger())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./dlogsnark.json if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Write human-readable logs instead of JSON")

	config := func() *Config { return cfg }
	rootCmd.AddCommand(
		generateCmd(config, stdout),
		proveCmd(config, stdout),
		verifyCmd(stdout),
	)

	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal result")
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func generateCmd(config func() *Config, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate proving and verifying parameters from a seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := parseSeed(config().Seed)
			if err != nil {
				return err
			}

			res, err := dlog.Generate(seed)
			if err != nil {
				return errors.Wrap(err, "generate")
			}
			return writeJSON(stdout, res)
		},
	}

	cmd.Flags().String("seed", "", "Comma-separated 32-bit seed words, e.g. 0,0,0,0,0,0,0,0")
	return cmd
}

func proveCmd(config func() *Config, stdout io.Writer) *cobra.Command {
	var params, x string

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Prove knowledge of x for H = x * G",
		Long: `Prove knowledge of x for H = x * G, and print the proof and H.
x is a hex integer less than the BabyJubJub subgroup order.
--params accepts either hex or @path to a file containing hex.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := parseSeed(config().Seed)
			if err != nil {
				return err
			}

			p, err := readArg(params)
			if err != nil {
				return err
			}

			res, err := dlog.Prove(seed, p, x)
			if err != nil {
				return errors.Wrap(err, "prove")
			}
			return writeJSON(stdout, res)
		},
	}

	cmd.Flags().String("seed", "", "Comma-separated 32-bit seed words, e.g. 0,0,0,0,0,0,0,0")
	cmd.Flags().StringVar(&params, "params", "", "Parameters as hex, or @path")
	cmd.Flags().StringVar(&x, "x", "", "Secret exponent as hex")
	_ = cmd.MarkFlagRequired("x")

	return cmd
}

func verifyCmd(stdout io.Writer) *cobra.Command {
	var params, proof, h string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a proof against a public point H",
		Long: `Verify a proof against a public point H.
A rejected proof prints {"result": false} and exits successfully.
--params and --proof accept either hex or @path to a file containing hex.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readArg(params)
			if err != nil {
				return err
			}
			pf, err := readArg(proof)
			if err != nil {
				return err
			}

			res, err := dlog.Verify(p, pf, h)
			if err != nil {
				return errors.Wrap(err, "verify")
			}
			return writeJSON(stdout, res)
		},
	}

	cmd.Flags().StringVar(&params, "params", "", "Parameters as hex, or @path")
	cmd.Flags().StringVar(&proof, "proof", "", "Proof as hex, or @path")
	cmd.Flags().StringVar(&h, "h", "", "Public point H as hex")
	for _, name := range []string{"params", "proof", "h"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
