package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ntfystep/internal/config"
	"ntfystep/internal/notifications"
)

type sendOptions struct {
	server      string
	topic       string
	message     string
	title       string
	priority    string
	tags        string
	markdown    bool
	timeout     int
	expandEnv   bool
	failOnError bool
	dryRun      bool
	jsonOutput  bool
}

type sendResult struct {
	URL     string                `json:"url"`
	Outcome notifications.Outcome `json:"outcome"`
}

type dryRunResult struct {
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	BodyBytes int               `json:"body_bytes"`
}

func newSendCommand(ctx *commandContext) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one notification and report the outcome",
		Long: `Send posts the message to https://<server>/<topic> with optional Title,
Priority, and Tags headers and a Markdown header, then prints the outcome as
build log lines. A failed notification does not fail the step unless
--fail-on-error is given.

Pass --message - to read the body from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			effective, err := applySendFlags(cmd, *cfg, opts)
			if err != nil {
				return err
			}
			if err := effective.ValidateDispatch(); err != nil {
				return err
			}
			req := notifications.RequestFromConfig(&effective)

			if opts.dryRun {
				return printDryRun(cmd, req, opts.jsonOutput)
			}

			logger, err := ctx.newLogger(&effective)
			if err != nil {
				return err
			}
			dispatchOpts := []notifications.Option{notifications.WithLogger(logger)}
			if ctx.httpClient != nil {
				dispatchOpts = append(dispatchOpts, notifications.WithHTTPClient(ctx.httpClient))
			}
			dispatcher := notifications.NewDispatcher(&effective, dispatchOpts...)

			outcome := dispatcher.Dispatch(cmd.Context(), req, newBuildLogWriter(cmd.OutOrStdout()))

			if opts.jsonOutput {
				if err := writeJSON(cmd, sendResult{URL: req.URL(), Outcome: outcome}); err != nil {
					return err
				}
			}
			if !outcome.Delivered() && opts.failOnError {
				return fmt.Errorf("notification failed: %s", outcome.Reason())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.server, "server", "s", "", "ntfy server host (overrides ntfy.server_host)")
	flags.StringVarP(&opts.topic, "topic", "t", "", "Topic to publish to")
	flags.StringVarP(&opts.message, "message", "m", "", "Message body (- reads stdin)")
	flags.StringVar(&opts.title, "title", "", "Notification title")
	flags.StringVarP(&opts.priority, "priority", "p", "", "Notification priority (min, low, default, high, urgent or 1-5)")
	flags.StringVar(&opts.tags, "tags", "", "Comma-separated tags")
	flags.BoolVar(&opts.markdown, "markdown", false, "Render the message as Markdown")
	flags.IntVar(&opts.timeout, "timeout", 0, "Request timeout in seconds (overrides ntfy.request_timeout)")
	flags.BoolVar(&opts.expandEnv, "expand-env", false, "Expand $VAR references in message, title, and tags")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "Exit non-zero when the notification is not delivered")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the request without sending it")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

// applySendFlags layers explicitly set flags over the loaded configuration.
func applySendFlags(cmd *cobra.Command, cfg config.Config, opts sendOptions) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Ntfy.ServerHost = config.NormalizeServerHost(opts.server)
	}
	if flags.Changed("topic") {
		cfg.Ntfy.Topic = strings.TrimSpace(opts.topic)
	}
	if flags.Changed("message") {
		body := opts.message
		if body == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return cfg, fmt.Errorf("read message from stdin: %w", err)
			}
			body = string(data)
		}
		cfg.Message.Body = body
	}
	if flags.Changed("title") {
		cfg.Message.Title = opts.title
	}
	if flags.Changed("priority") {
		cfg.Message.Priority = strings.TrimSpace(opts.priority)
	}
	if flags.Changed("tags") {
		cfg.Message.Tags = opts.tags
	}
	if flags.Changed("markdown") {
		cfg.Message.Markdown = opts.markdown
	}
	if flags.Changed("expand-env") {
		cfg.Message.ExpandEnv = opts.expandEnv
	}
	if flags.Changed("timeout") {
		if opts.timeout <= 0 {
			return cfg, fmt.Errorf("--timeout must be positive, got %d", opts.timeout)
		}
		cfg.Ntfy.RequestTimeout = opts.timeout
	}
	return cfg, nil
}

func printDryRun(cmd *cobra.Command, req notifications.Request, jsonOutput bool) error {
	headers := req.Headers()
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	if jsonOutput {
		flat := make(map[string]string, len(headers))
		for _, name := range names {
			flat[name] = headers.Get(name)
		}
		return writeJSON(cmd, dryRunResult{
			URL:       req.URL(),
			Headers:   flat,
			Body:      req.Message,
			BodyBytes: len(req.Message),
		})
	}

	pairs := [][2]string{{"POST", req.URL()}}
	for _, name := range names {
		pairs = append(pairs, [2]string{name, headers.Get(name)})
	}
	pairs = append(pairs, [2]string{"Body", strconv.Itoa(len(req.Message)) + " bytes"})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderKeyValues(pairs))
	fmt.Fprintln(out, "Dry run: nothing was sent")
	return nil
}
