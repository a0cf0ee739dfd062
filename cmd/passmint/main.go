// Command passmint is the command-line shell over the password core: it
// generates passwords, evaluates strength, and converts exported collections
// between JSON and CSV.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/passmint/passmint-go/internal/breach"
	"github.com/passmint/passmint-go/internal/config"
	"github.com/passmint/passmint-go/internal/model"
	"github.com/passmint/passmint-go/internal/service"
)

func main() {
	// A .env file seeds the environment before config.Load reads it, the same
	// as the API server. Absence is fine for a CLI, so no warning here.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passmint",
		Short:         "Generate and evaluate passwords",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newEvaluateCmd(), newConvertCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		length    int
		count     int
		noLower   bool
		noUpper   bool
		noNumbers bool
		noSpecial bool
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more random passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			history := service.NewHistoryService()
			gen := service.NewGeneratorService(history)

			resp, err := gen.Generate(model.GenerateRequest{
				Length:       length,
				Count:        count,
				UseLowercase: ptr(!noLower),
				UseUppercase: ptr(!noUpper),
				UseNumbers:   ptr(!noNumbers),
				UseSpecial:   ptr(!noSpecial),
			})
			if err != nil {
				return err
			}

			for i, p := range resp.Passwords {
				if resp.Count == 1 {
					fmt.Fprintln(cmd.OutOrStdout(), p.Password)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p.Password)
				}
			}

			if outPath != "" {
				if err := history.ExportFile(outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d passwords to %s\n", resp.Count, outPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", service.DefaultLength, "password length (8-128)")
	cmd.Flags().IntVarP(&count, "count", "n", service.DefaultCount, "number of passwords to generate")
	cmd.Flags().BoolVar(&noLower, "no-lowercase", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&noUpper, "no-uppercase", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "exclude numbers")
	cmd.Flags().BoolVar(&noSpecial, "no-special", false, "exclude special characters")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also export the batch to a .json or .csv file")

	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var checkBreach bool

	cmd := &cobra.Command{
		Use:   "evaluate <password>",
		Short: "Rate the strength of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			var checker breach.Checker
			if checkBreach {
				checker = breach.NewHIBPClient(cfg.BreachBaseURL, cfg.BreachTimeout)
			}

			report := service.NewStrengthService(checker, cfg.BreachTimeout).
				Evaluate(context.Background(), args[0])

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d/100)\n", report.Rating, report.Score)
			for _, reason := range report.Reasons {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", reason)
			}
			if report.Breach != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "breach status: %s\n", report.Breach)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkBreach, "breach", false, "check the password against the breach corpus")

	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert an exported collection between JSON and CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			history := service.NewHistoryService()
			imported, err := history.ImportFile(args[0])
			if err != nil {
				return err
			}
			if err := history.ExportFile(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "converted %d passwords: %s -> %s\n", imported, args[0], args[1])
			return nil
		},
	}
}

func ptr(b bool) *bool { return &b }
