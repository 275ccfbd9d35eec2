package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docketd/docket/internal/gate"
)

// SubmitOptions holds flags for the submit command.
type SubmitOptions struct {
	*RootOptions
	Payload string
	Case    string
}

// NewSubmitCommand creates the submit command: the generic boundary
// submission, one operation name plus a JSON payload.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit <operation>",
		Short: "Submit an operation through the gate",
		Long: `Submit an operation through the gate.

Reads resolve immediately; mutations run the validator chain, apply, and
append a trace event.

Example:
  docket submit doc_ingest --case case-1 \
    --payload '{"branch_code":"EVD","source_filename":"scan.pdf","storage_ref":"s3://bucket/scan.pdf"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Payload, "payload", "", "operation payload as JSON")
	cmd.Flags().StringVar(&opts.Case, "case", "", "case context for the operation")

	return cmd
}

func runSubmit(opts *SubmitOptions, operation string, cmd *cobra.Command) error {
	var payload map[string]any
	if opts.Payload != "" {
		if err := json.Unmarshal([]byte(opts.Payload), &payload); err != nil {
			return fmt.Errorf("invalid --payload JSON: %w", err)
		}
	}

	g, s, err := openGate(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	resp := g.Submit(cmd.Context(), gate.Request{
		Operation: operation,
		Payload:   payload,
		CaseID:    opts.Case,
	})

	if err := renderResponse(cmd.OutOrStdout(), opts.Format, resp); err != nil {
		return err
	}
	return responseError(resp)
}
