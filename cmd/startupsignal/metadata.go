package main

import (
	"encoding/json"
	"fmt"
	"io"

	mdsvc "startupsignal/internal/services/api/metadata/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newMetadataCmd(a *app) *cobra.Command {
	var format, path string
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Load and validate the metadata source, then print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logToStderr(cmd.ErrOrStderr())
			if path == "" {
				path = a.cfg.Prefix("METADATA_").MayString("PATH", "data/metadata.json")
			}
			md, err := mdsvc.Read(path)
			if err != nil {
				return &exitError{code: 1, err: fmt.Errorf("%s: %w", path, err)}
			}
			return encode(cmd.OutOrStdout(), format, md)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&path, "path", "", "metadata source; defaults to METADATA_PATH")
	return cmd
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q, want json or yaml", format)
}
