package download

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPFetcher downloads segments over HTTP(S), streaming the body straight
// to disk. The timeout bounds connecting, waiting for headers, and each gap
// between body reads; a large segment whose bytes keep flowing is never cut
// off on total transfer time.
type HTTPFetcher struct {
	client *http.Client
	log    *logrus.Logger
}

// deadlineConn pushes the read deadline forward on every read, turning the
// connection deadline into an idle timeout.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

// NewHTTPFetcher creates a fetcher whose connect, header and read-gap waits
// are each bounded by timeout
func NewHTTPFetcher(timeout time.Duration, log *logrus.Logger) *HTTPFetcher {
	dialer := &net.Dialer{Timeout: timeout}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					conn, err := dialer.DialContext(ctx, network, addr)
					if err != nil {
						return nil, err
					}
					return &deadlineConn{Conn: conn, timeout: timeout}, nil
				},
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
			},
		},
		log: log,
	}
}

// Fetch downloads uri to destPath. Network and HTTP-status failures return
// (false, nil): they are non-fatal, counted by the caller, and never retried
// here. Only local faults that make further progress pointless, such as a
// destination that cannot be created, surface as errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri, destPath string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		f.log.WithError(err).WithField("uri", uri).Debug("segment request rejected")
		return false, nil
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.WithError(err).WithField("uri", uri).Debug("segment fetch failed")
		return false, nil
	}
	defer resp.Body.Close()

	// Any 2xx counts as success; CDNs answer range requests with 206
	if resp.StatusCode/100 != 2 {
		f.log.WithFields(logrus.Fields{"uri": uri, "status": resp.Status}).Debug("segment fetch rejected")
		return false, nil
	}

	out, err := os.Create(destPath)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", destPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		// A truncated segment file must not survive to the merge step
		os.Remove(destPath)
		f.log.WithError(err).WithField("uri", uri).Debug("segment body truncated")
		return false, nil
	}

	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return false, fmt.Errorf("close %s: %w", destPath, err)
	}

	return true, nil
}
