package notifications

import (
	"net/http"
	"os"
	"strings"

	"ntfystep/internal/config"
)

// Header names understood by ntfy.
const (
	HeaderTitle    = "Title"
	HeaderPriority = "Priority"
	HeaderTags     = "Tags"
	HeaderMarkdown = "Markdown"
)

// Request describes one notification. It is built once per invocation and
// treated as immutable.
type Request struct {
	ServerHost string
	Topic      string
	Message    string
	Title      string
	Priority   string
	Tags       string
	Markdown   bool
}

// URL returns the target as https://{ServerHost}/{Topic}. Neither part is
// escaped or validated.
func (r Request) URL() string {
	return "https://" + r.ServerHost + "/" + r.Topic
}

// Headers returns the ntfy metadata headers for the request. Title, Priority,
// and Tags appear only when set; Markdown is always present.
func (r Request) Headers() http.Header {
	h := make(http.Header, 4)
	if r.Title != "" {
		h.Set(HeaderTitle, r.Title)
	}
	if r.Priority != "" {
		h.Set(HeaderPriority, r.Priority)
	}
	if tags := strings.TrimSpace(r.Tags); tags != "" {
		h.Set(HeaderTags, tags)
	}
	h.Set(HeaderMarkdown, yesNo(r.Markdown))
	return h
}

// RequestFromConfig assembles a Request from loaded configuration. When
// message.expand_env is set, environment references in the body, title, and
// tags are expanded first.
func RequestFromConfig(cfg *config.Config) Request {
	if cfg == nil {
		return Request{}
	}
	req := Request{
		ServerHost: cfg.Ntfy.ServerHost,
		Topic:      cfg.Ntfy.Topic,
		Message:    cfg.Message.Body,
		Title:      cfg.Message.Title,
		Priority:   cfg.Message.Priority,
		Tags:       cfg.Message.Tags,
		Markdown:   cfg.Message.Markdown,
	}
	if cfg.Message.ExpandEnv {
		req.Message = os.ExpandEnv(req.Message)
		req.Title = os.ExpandEnv(req.Title)
		req.Tags = os.ExpandEnv(req.Tags)
	}
	return req
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
