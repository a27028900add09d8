package nets

import (
	"context"
	"net"
	"time"

	"github.com/reusee/stepviz/logs"
)

// Dialer is satisfied by *net.Dialer and by proxy dialers.
type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

const dialTimeout = 10 * time.Second

// Dialer connects to debugger servers. Local addresses are dialed directly and
// others go through the configured proxy.
func (Module) Dialer(
	getProxyDialer GetProxyDialer,
	isLocalAddr IsLocalAddr,
	logger logs.Logger,
) Dialer {
	direct := &net.Dialer{
		Timeout: dialTimeout,
	}
	return DialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		if isLocalAddr(addr) {
			logger.DebugContext(ctx, "dial", "addr", addr, "route", "direct")
			return direct.DialContext(ctx, network, addr)
		}
		proxyDialer, err := getProxyDialer()
		if err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "dial", "addr", addr, "route", "proxy")
		ctx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()
		return proxyDialer.DialContext(ctx, network, addr)
	})
}

// DialerFunc adapts a function to Dialer. Dial uses a background context.
type DialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

var _ Dialer = DialerFunc(nil)

func (d DialerFunc) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

func (d DialerFunc) Dial(network, addr string) (net.Conn, error) {
	return d(context.Background(), network, addr)
}
