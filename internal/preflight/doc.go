// Package preflight provides readiness checks for the notification server and
// the filesystem paths ntfystep writes to.
//
// The CLI "ntfystep preflight" command runs RunAll and renders the results;
// pipelines can run it as an early step to catch a wrong host or an
// unwritable log directory before the step that actually notifies.
package preflight
