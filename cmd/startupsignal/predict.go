package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"startupsignal/internal/adapters/scorer"
	"startupsignal/internal/core/scoring"
	"startupsignal/internal/modkit"
	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/logger"
	phttp "startupsignal/internal/platform/net/http"
	predictmod "startupsignal/internal/services/api/predict/module"

	"github.com/spf13/cobra"
)

func newPredictCmd(a *app) *cobra.Command {
	var file string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one request through the scorer and print the outcome",
		Long: `Reads a request document, runs it through the same bridge the HTTP service uses
and prints what the client would receive.

Exit codes: 0 success, 2 rejected by the model, 1 any other failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logToStderr(cmd.ErrOrStderr())
			return a.predict(cmd.Context(), file, timeout, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "request JSON file, - reads stdin")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "override SCORER_TIMEOUT for this run")
	return cmd
}

func (a *app) predict(ctx context.Context, file string, timeout time.Duration, w io.Writer) error {
	raw, err := a.readRequest(file)
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	deps := modkit.Deps{Log: *logger.Named("predict"), Cfg: a.cfg}
	cfg := predictmod.ConfigFrom(deps)
	if timeout > 0 {
		cfg.Scorer.Timeout = timeout
	}
	svc := predictmod.NewService(deps, cfg, scorer.New(cfg.Scorer, scorer.WithLogger(deps.Log)))

	out, err := svc.Predict(ctx, raw)
	if err != nil {
		return &exitError{code: 1, err: err}
	}
	switch out.Kind {
	case scoring.Success:
		_, _ = fmt.Fprintf(w, "%s\n", out.Document)
		return nil
	case scoring.ModelRejected:
		_, _ = fmt.Fprintf(w, "%s\n", out.Document)
		return &exitError{code: 2}
	}
	wr := perr.WireFrom(out.Err())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(phttp.ErrorBody{Error: wr.Message, Details: wr.Details})
	return &exitError{code: 1}
}

func (a *app) readRequest(file string) ([]byte, error) {
	var raw []byte
	var err error
	if file == "" || file == "-" {
		raw, err = io.ReadAll(a.stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) || len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("request must be a single JSON object")
	}
	return raw, nil
}

// logToStderr keeps stdout for the command's own output
func logToStderr(w io.Writer) {
	opt := logger.FromEnv()
	opt.Writer = w
	logger.Init(opt)
}
