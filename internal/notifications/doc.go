// Package notifications dispatches a single push notification to an
// ntfy-compatible server.
//
// A Request carries the server host, topic, body, and optional metadata; the
// Dispatcher turns it into one POST to https://{host}/{topic}, maps the
// optional fields to Title/Priority/Tags headers, always sends Markdown as
// yes or no, and classifies the response into an Outcome. Nothing here
// retries, queues, or persists: every failure, transport or HTTP, is folded
// into a Failed outcome and reported on the caller's build log so the
// surrounding job keeps running.
package notifications
