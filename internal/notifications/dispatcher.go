package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"ntfystep/internal/config"
	"ntfystep/internal/logging"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 2048
)

// Build log lines written for every dispatch.
const (
	LogSending      = "Sending message to %s"
	LogDelivered    = "Request was successful!"
	LogStatusFailed = "Request failed with status code: %d"
	LogSendFailed   = "Request failed: %v"
)

// Dispatcher posts notifications. It holds no per-request state and may be
// reused across calls.
type Dispatcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
	newID     func() string
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client, including its timeout and transport.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.client = client
		}
	}
}

// WithTimeout sets the overall request timeout on the dispatcher's client.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.client.Timeout = timeout
		}
	}
}

// WithLogger attaches a structured logger for operator diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(d *Dispatcher) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			d.userAgent = ua
		}
	}
}

// NewDispatcher builds a dispatcher using the timeout and user agent from cfg.
// A nil cfg falls back to repository defaults.
func NewDispatcher(cfg *config.Config, opts ...Option) *Dispatcher {
	timeout := defaultTimeout
	userAgent := config.DefaultUserAgent
	if cfg != nil {
		timeout = cfg.RequestTimeout()
		if ua := strings.TrimSpace(cfg.Ntfy.UserAgent); ua != "" {
			userAgent = ua
		}
	}

	d := &Dispatcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logging.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.logger, "dispatcher")
	return d
}

// Dispatch sends req once and classifies the response. Progress and the
// result are written as lines to buildLog (nil discards them). Dispatch never
// returns an error: transport failures and non-200 responses both become a
// Failed outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, buildLog io.Writer) Outcome {
	if buildLog == nil {
		buildLog = io.Discard
	}
	target := req.URL()
	logger := d.logger.With(logging.Args(
		logging.String(logging.FieldDispatchID, d.newID()),
		logging.String(logging.FieldURL, target),
	)...)

	fmt.Fprintf(buildLog, LogSending+"\n", target)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(req.Message))
	if err != nil {
		return d.fail(logger, buildLog, &TransportError{Op: "build request", Err: err})
	}
	for name, values := range req.Headers() {
		httpReq.Header[name] = values
	}
	httpReq.Header.Set("User-Agent", d.userAgent)
	httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")

	logger.Debug("posting notification",
		logging.Int("body_bytes", len(req.Message)),
		logging.Bool("markdown", req.Markdown),
	)

	started := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return d.fail(logger, buildLog, &TransportError{Op: "send request", Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return d.fail(logger, buildLog, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		})
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	fmt.Fprintln(buildLog, LogDelivered)
	logger.Info("notification delivered",
		logging.Int(logging.FieldStatusCode, resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
	)
	return Delivered(resp.StatusCode)
}

func (d *Dispatcher) fail(logger *slog.Logger, buildLog io.Writer, err error) Outcome {
	outcome := Failed(err)

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		fmt.Fprintf(buildLog, LogStatusFailed+"\n", statusErr.Code)
		logging.WarnWithContext(logger, "notification rejected", "dispatch_status",
			logging.Int(logging.FieldStatusCode, statusErr.Code),
			logging.String("response", statusErr.Body),
			logging.String(logging.FieldErrorHint, "verify the topic exists and the server accepts anonymous publishing"),
		)
		return outcome
	}

	fmt.Fprintf(buildLog, LogSendFailed+"\n", err)
	logging.WarnWithContext(logger, "notification not sent", "dispatch_transport",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the server host, network access, and request timeout"),
	)
	return outcome
}
