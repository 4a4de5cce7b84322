package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(loadConfig ConfigLoader, newLogger LoggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <node-id>",
		Short: "Fetch the data preview for a graph node",
		Example: `  # Preview the rows behind a source node
  autonomos-dash preview sf-accounts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			client := backend.New(cfg.BackendURL, &http.Client{Timeout: 30 * time.Second}, logger)
			payload, err := client.FetchPreview(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch preview for %s: %w", args[0], err)
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, payload, "", "  "); err != nil {
				// Not JSON, print as-is.
				_, _ = cmd.OutOrStdout().Write(payload)
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}
