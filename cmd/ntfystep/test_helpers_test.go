package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
)

type cliRun struct {
	stdout string
	stderr string
	logs   string
}

// runCLI executes the root command with args. Structured logs are captured
// separately from stdout, which carries the build log.
func runCLI(t *testing.T, args []string, client *http.Client, stdin string) (cliRun, error) {
	t.Helper()

	var stdout, stderr, logs bytes.Buffer
	ctx := newCommandContext()
	ctx.httpClient = client
	ctx.logWriter = &logs

	cmd := buildRootCommand(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), logs: logs.String()}, err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
