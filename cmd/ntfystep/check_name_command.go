package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ntfystep/internal/formcheck"
)

func newCheckNameCommand() *cobra.Command {
	var allowAccents bool

	cmd := &cobra.Command{
		Use:         "check-name [value]",
		Short:       "Check a step name field",
		Long:        "Grades a name: empty is an error, short names and accented letters are warnings.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var value string
			if len(args) == 1 {
				value = args[0]
			}
			result := formcheck.CheckName(value, allowAccents)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			label := result.Kind.String()
			switch result.Kind {
			case formcheck.OK:
				label = colorizeLabel(label, ansiGreen, colorize)
			case formcheck.Warning:
				label = colorizeLabel(label, ansiYellow, colorize)
			case formcheck.Error:
				label = colorizeLabel(label, ansiRed, colorize)
			}
			if result.Message == "" {
				fmt.Fprintln(out, label)
			} else {
				fmt.Fprintf(out, "%s: %s\n", label, result.Message)
			}

			if result.Kind == formcheck.Error {
				return errors.New("name check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowAccents, "allow-accents", false, "Do not warn about accented characters")
	return cmd
}
