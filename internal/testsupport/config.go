package testsupport

import (
	"path/filepath"
	"testing"

	"ntfystep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig returns a normalized config that targets ntfy.sh/test-topic with
// a short request timeout. Options run after the defaults are applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Ntfy.ServerHost = "ntfy.sh"
	cfgVal.Ntfy.Topic = "test-topic"
	cfgVal.Ntfy.RequestTimeout = 2

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithServer points the config at host, which may carry a port.
func WithServer(host string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ntfy.ServerHost = config.NormalizeServerHost(host)
	}
}

// WithTopic overrides the topic.
func WithTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ntfy.Topic = topic
	}
}

// WithMessage sets the default body and title.
func WithMessage(body, title string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Message.Body = body
		b.cfg.Message.Title = title
	}
}

// WithLogDir enables file logging under the test's temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, "logs")
	}
}
