package cli

import (
	"github.com/spf13/cobra"

	"github.com/docketd/docket/internal/gate"
)

// NewCaseCommand creates the case command: an enriched case read.
func NewCaseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "case <case-id>",
		Short:         "Show a case with its branches and their documents",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, cmd, "case_get", map[string]any{"case_id": args[0]})
		},
	}
}

// NewDocCommand creates the doc command: a single document read.
func NewDocCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "doc <case-id> <document-id>",
		Short:         "Show one document of a case",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, cmd, "doc_get", map[string]any{
				"case_id":     args[0],
				"document_id": args[1],
			})
		},
	}
}

// NewTraceCommand creates the trace command: the case audit log, most recent
// event first.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "trace <case-id>",
		Short:         "Show the audit trace of a case",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, cmd, "trace_query", map[string]any{"case_id": args[0]})
		},
	}
}

func runRead(opts *RootOptions, cmd *cobra.Command, operation string, payload map[string]any) error {
	g, s, err := openGate(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	resp := g.Submit(cmd.Context(), gate.Request{Operation: operation, Payload: payload})
	if err := renderResponse(cmd.OutOrStdout(), opts.Format, resp); err != nil {
		return err
	}
	return responseError(resp)
}
