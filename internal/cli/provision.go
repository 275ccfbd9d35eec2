package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docketd/docket/internal/provision"
	"github.com/docketd/docket/internal/store"
)

// ProvisionOptions holds flags for the provision command.
type ProvisionOptions struct {
	*RootOptions
	File string
}

// NewProvisionCommand creates the provision command: load a YAML fixture,
// validate it against the fixture schema, and insert its cases.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProvisionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "provision --file <fixture.yaml>",
		Short: "Provision cases from a fixture file",
		Long: `Provision cases from a fixture file.

The fixture is validated whole before any insert: a single malformed case
rejects the entire file. Every provisioned case receives the 13 fixed
branches.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "path to the fixture YAML file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runProvision(opts *ProvisionOptions, cmd *cobra.Command) error {
	fixture, err := provision.LoadFile(opts.File)
	if err != nil {
		return err
	}

	s, err := store.OpenSQLite(opts.Database)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer s.Close()

	n, err := provision.NewProvisioner(s, nil, nil).Apply(cmd.Context(), fixture)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "provisioned %d case(s)\n", n)
	return nil
}
