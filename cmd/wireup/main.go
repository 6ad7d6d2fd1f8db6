// Command wireup inspects and exercises a wiring configuration: validate it,
// print the effective (redacted) properties, or run the wiring itself.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drblury/wireup"
	"github.com/drblury/wireup/internal/jsoncodec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "wireup",
		Short:         "Configuration-driven client wiring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")

	root.AddCommand(
		newValidateCmd(&configPath),
		newPrintCmd(&configPath),
		newWireCmd(&configPath),
	)

	return root
}

func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report validation failures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := wireup.Load(*configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
}

func newPrintCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective properties with credentials redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			props, err := wireup.Load(*configPath)
			if err != nil {
				return err
			}
			out, err := jsoncodec.MarshalIndent(props.Redacted(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newWireCmd(configPath *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "wire",
		Short: "Run the default configurers against the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			props, err := wireup.Load(*configPath)
			if err != nil {
				return err
			}

			configurers := wireup.DefaultConfigurers()

			if dryRun {
				for _, c := range configurers {
					state := "skip"
					if c.Enabled == nil || c.Enabled(props) {
						state = "wire"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-5s %s\n", state, c.Provides)
				}
				return nil
			}

			w := &wireup.Wiring{
				Props:     props,
				Container: wireup.NewContainer(),
				Log:       wireup.NewSlogLogger(slog.Default()),
			}
			if err := wireup.Apply(cmd.Context(), w, configurers); err != nil {
				return err
			}

			for _, name := range w.Container.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be wired without constructing anything")

	return cmd
}
