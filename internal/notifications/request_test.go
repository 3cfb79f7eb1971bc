package notifications_test

import (
	"encoding/json"
	"errors"
	"testing"

	"ntfystep/internal/config"
	"ntfystep/internal/notifications"
)

func TestRequestURLIsPlainConcatenation(t *testing.T) {
	tests := []struct {
		host, topic, want string
	}{
		{"ntfy.sh", "alerts", "https://ntfy.sh/alerts"},
		{"ntfy.example.com:8443", "ci-builds", "https://ntfy.example.com:8443/ci-builds"},
		{"example.com/ntfy", "a b", "https://example.com/ntfy/a b"},
		{"host", "topic?x=1", "https://host/topic?x=1"},
	}
	for _, tc := range tests {
		req := notifications.Request{ServerHost: tc.host, Topic: tc.topic}
		if got := req.URL(); got != tc.want {
			t.Fatalf("URL(%q, %q) = %q, want %q", tc.host, tc.topic, got, tc.want)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	tests := []struct {
		name string
		req  notifications.Request
		want map[string]string
	}{
		{
			name: "only markdown when everything else empty",
			req:  notifications.Request{},
			want: map[string]string{"Markdown": "no"},
		},
		{
			name: "markdown yes",
			req:  notifications.Request{Markdown: true},
			want: map[string]string{"Markdown": "yes"},
		},
		{
			name: "all fields",
			req:  notifications.Request{Title: "Build Failed", Priority: "5", Tags: "\tci, urgent \n", Markdown: false},
			want: map[string]string{"Title": "Build Failed", "Priority": "5", "Tags": "ci, urgent", "Markdown": "no"},
		},
		{
			name: "whitespace tags dropped",
			req:  notifications.Request{Tags: "   "},
			want: map[string]string{"Markdown": "no"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			headers := tc.req.Headers()
			if len(headers) != len(tc.want) {
				t.Fatalf("expected %d headers, got %v", len(tc.want), headers)
			}
			for name, value := range tc.want {
				if got := headers.Get(name); got != value {
					t.Fatalf("header %s = %q, want %q", name, got, value)
				}
			}
		})
	}
}

func TestRequestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ntfy.ServerHost = "ntfy.sh"
	cfg.Ntfy.Topic = "builds"
	cfg.Message.Body = "Build $BUILD_NUMBER done"
	cfg.Message.Title = "${JOB_NAME}"
	cfg.Message.Tags = "ci"
	cfg.Message.Priority = "high"
	cfg.Message.Markdown = true
	t.Setenv("BUILD_NUMBER", "42")
	t.Setenv("JOB_NAME", "release")

	req := notifications.RequestFromConfig(&cfg)
	if req.Message != "Build $BUILD_NUMBER done" || req.Title != "${JOB_NAME}" {
		t.Fatalf("expected raw values without expand_env, got %+v", req)
	}

	cfg.Message.ExpandEnv = true
	req = notifications.RequestFromConfig(&cfg)
	want := notifications.Request{
		ServerHost: "ntfy.sh",
		Topic:      "builds",
		Message:    "Build 42 done",
		Title:      "release",
		Priority:   "high",
		Tags:       "ci",
		Markdown:   true,
	}
	if req != want {
		t.Fatalf("RequestFromConfig = %+v, want %+v", req, want)
	}

	if got := notifications.RequestFromConfig(nil); got != (notifications.Request{}) {
		t.Fatalf("expected zero request for nil config, got %+v", got)
	}
}

func TestOutcomeAccessors(t *testing.T) {
	delivered := notifications.Delivered(200)
	if !delivered.Delivered() || delivered.Reason() != "" || delivered.Err() != nil {
		t.Fatalf("unexpected delivered outcome: %s", delivered)
	}

	transport := notifications.Failed(&notifications.TransportError{Op: "send request", Err: errors.New("dial tcp: refused")})
	if transport.Delivered() || transport.StatusCode() != 0 {
		t.Fatalf("unexpected transport outcome: %s", transport)
	}
	if transport.Reason() != "send request: dial tcp: refused" {
		t.Fatalf("unexpected reason %q", transport.Reason())
	}

	unknown := notifications.Failed(nil)
	if unknown.Delivered() || unknown.Err() == nil {
		t.Fatal("Failed(nil) must still be a failure")
	}
}

func TestOutcomeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(notifications.Failed(&notifications.StatusError{Code: 500, Body: "oops"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["delivered"] != false || decoded["status_code"] != float64(500) || decoded["reason"] != "500" {
		t.Fatalf("unexpected json: %s", data)
	}
	if decoded["error"] != "ntfy returned 500: oops" {
		t.Fatalf("unexpected error text: %s", data)
	}
}
