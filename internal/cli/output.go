package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/docketd/docket/internal/gate"
)

// renderResponse writes a gate response in the selected format. Text mode
// prints a short status line plus the data as indented JSON; json mode prints
// the whole response envelope.
func renderResponse(w io.Writer, format string, resp gate.Response) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if !resp.OK {
		fmt.Fprintf(w, "error: %s: %s\n", resp.Error.Code, resp.Error.Message)
		return nil
	}

	fmt.Fprintln(w, "ok")
	if resp.TraceEventID != "" {
		fmt.Fprintf(w, "trace_event_id: %s\n", resp.TraceEventID)
	}
	if resp.Data != nil {
		b, err := json.MarshalIndent(resp.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("render data: %w", err)
		}
		fmt.Fprintln(w, string(b))
	}
	return nil
}

// responseError converts a failed response into a command error so cobra
// reports a non-zero exit. Successful responses return nil.
func responseError(resp gate.Response) error {
	if resp.OK {
		return nil
	}
	return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
}
