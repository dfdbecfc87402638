package main

import (
	"fmt"

	"startupsignal/internal/core/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := version.Info()
			if format == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s)\n",
					bi.Service, bi.Version, bi.Commit, bi.Date, bi.GoVersion)
				return err
			}
			return encode(cmd.OutOrStdout(), format, bi)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
