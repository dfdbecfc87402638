package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"startupsignal/internal/platform/config"
	"startupsignal/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, env map[string]string, stdin string, args ...string) (int, string, string) {
	t.Helper()
	a := &app{cfg: config.FromMap(env), stdin: strings.NewReader(stdin)}
	var out, errb bytes.Buffer
	code := execute(context.Background(), a, args, &out, &errb)
	return code, out.String(), errb.String()
}

func scorerEnv(t *testing.T, body string) map[string]string {
	return map[string]string{
		"SCORER_COMMAND": testkit.Script(t, body),
		"SCORER_TIMEOUT": "5s",
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, nil, "", "version", "--format", "json")
	require.Equal(t, 0, code)
	var bi map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &bi))
	assert.Equal(t, "startupsignal", bi["service"])

	code, out, _ = run(t, nil, "", "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "startupsignal "))
}

func TestMetadata(t *testing.T) {
	p := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"industries":["Fintech"],"regions":["Europe","Asia"]}`), 0o600))

	code, out, _ := run(t, map[string]string{"METADATA_PATH": p}, "", "metadata", "--format", "yaml")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "industries:\n  - Fintech")
	assert.Contains(t, out, "- Asia")

	code, out, _ = run(t, nil, "", "metadata", "--path", p)
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"industries":["Fintech"],"regions":["Europe","Asia"]}`, out)

	code, _, _ = run(t, nil, "", "metadata", "--path", p, "--format", "toml")
	assert.Equal(t, 1, code)
}

func TestMetadata_SourceErrorsFail(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := run(t, nil, "", "metadata", "--path", filepath.Join(dir, "absent.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "absent.json")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"regions":"Europe"}`), 0o600))
	code, _, _ = run(t, nil, "", "metadata", "--path", bad)
	assert.Equal(t, 1, code)
}

func TestPredict_ExitCodes(t *testing.T) {
	req := `{"industry":"Fintech","region":"Europe"}`

	code, out, _ := run(t, scorerEnv(t, `cat >/dev/null; printf '{"prediction":"High Success"}'`), req, "predict")
	assert.Equal(t, 0, code)
	assert.Equal(t, `{"prediction":"High Success"}`+"\n", out)

	code, out, _ = run(t, scorerEnv(t, `cat >/dev/null; printf '{"error":"unknown industry"}'`), req, "predict", "-f", "-")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "unknown industry")

	code, out, _ = run(t, scorerEnv(t, `cat >/dev/null; echo 'model file missing' >&2; exit 1`), req, "predict")
	assert.Equal(t, 1, code)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "Prediction failed", body["error"])
	assert.Equal(t, "model file missing", body["details"])
}

func TestPredict_FromFileAndTimeout(t *testing.T) {
	p := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"industry":"AI"}`), 0o600))

	code, out, _ := run(t, scorerEnv(t, `cat >/dev/null; sleep 5`), "", "predict", "-f", p, "--timeout", "100ms")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Prediction timed out")
}

func TestPredict_BadRequest(t *testing.T) {
	code, _, errOut := run(t, scorerEnv(t, `cat`), `[1,2,3]`, "predict")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "JSON object")
}

func TestServe_StopsOnCancel(t *testing.T) {
	a := &app{cfg: config.FromMap(map[string]string{
		"CORE_API_ADDR":       "127.0.0.1:0",
		"CORE_API_STATIC_DIR": t.TempDir(),
		"METADATA_PATH":       filepath.Join(t.TempDir(), "absent.json"),
	})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
