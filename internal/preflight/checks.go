package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const (
	defaultHTTPSPort = "443"
	maxDialTimeout   = 5 * time.Second
	serverCheckName  = "Notification server"
)

// CheckServerReachable opens a TCP connection to the server host, using port
// 443 unless the host names one. It does not send a notification.
func CheckServerReachable(ctx context.Context, serverHost string, timeout time.Duration) Result {
	addr, err := dialAddress(serverHost)
	if err != nil {
		return Result{Name: serverCheckName, Detail: err.Error()}
	}
	if timeout <= 0 || timeout > maxDialTimeout {
		timeout = maxDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{Name: serverCheckName, Detail: fmt.Sprintf("%s (error: %s)", addr, summarizeDialError(err))}
	}
	_ = conn.Close()
	return Result{Name: serverCheckName, Passed: true, Detail: fmt.Sprintf("%s (reachable)", addr)}
}

func dialAddress(serverHost string) (string, error) {
	authority := strings.TrimSpace(serverHost)
	if idx := strings.Index(authority, "/"); idx >= 0 {
		authority = authority[:idx]
	}
	if authority == "" {
		return "", errors.New("server host not configured")
	}
	if _, _, err := net.SplitHostPort(authority); err == nil {
		return authority, nil
	}
	return net.JoinHostPort(strings.Trim(authority, "[]"), defaultHTTPSPort), nil
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeDialError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "cannot resolve host"
	}
	return err.Error()
}
