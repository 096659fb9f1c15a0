package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/internal/appconfig"
	"pkt.systems/tabdeck/schema"
)

// newEmitCmd posts a session lifecycle event to a running server, useful for
// wiring CLI agent hooks to the reconciler.
func newEmitCmd() *cobra.Command {
	var cfgPath string
	var sessionID string
	var status string
	var projectPath string
	var model string
	var errText string
	var pid int
	var runID int64
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Post a session state event to a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			event := schema.SessionStateEvent{
				SessionID:   schema.SessionID(sessionID),
				Status:      schema.SessionStatus(status),
				ProjectPath: projectPath,
				Model:       model,
				Error:       errText,
				PID:         pid,
				RunID:       runID,
			}
			if err := event.Validate(); err != nil {
				return err
			}
			body, err := json.Marshal(event)
			if err != nil {
				return err
			}
			url := fmt.Sprintf("http://%s/api/session-state", cfg.HTTP.Addr)
			client := &http.Client{Timeout: 5 * time.Second}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusOK {
				data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return fmt.Errorf("emit rejected: %s: %s", resp.Status, bytes.TrimSpace(data))
			}
			logger.Info("emit ok", "session", event.SessionID, "status", event.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id")
	cmd.Flags().StringVar(&status, "status", "", "session status (started or stopped)")
	cmd.Flags().StringVar(&projectPath, "project", "", "project path")
	cmd.Flags().StringVar(&model, "model", "", "model name")
	cmd.Flags().StringVar(&errText, "error", "", "error message for stopped sessions")
	cmd.Flags().IntVar(&pid, "pid", 0, "agent process id")
	cmd.Flags().Int64Var(&runID, "run-id", 0, "agent run id")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
