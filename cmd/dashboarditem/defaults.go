package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type defaultsReport struct {
	Defaults  map[string]string `yaml:"defaults"`
	SearchURL string            `yaml:"search_url"`
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default preferences for the configured origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			report := defaultsReport{
				Defaults:  map[string]string{},
				SearchURL: a.item.SearchURL(),
			}
			for key, value := range a.item.Defaults() {
				report.Defaults[string(key)] = value
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
