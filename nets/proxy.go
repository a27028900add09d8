package nets

import (
	"cmp"
	"context"
	"net"
	"net/url"
	"os"
	"sync"

	"github.com/reusee/stepviz/configs"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/modes"
	"golang.org/x/net/proxy"
)

// ProxyAddr routes debugger connections to non-local hosts.
type ProxyAddr string

func (p ProxyAddr) ConfigExpr() string {
	return "ProxyAddr"
}

var _ configs.Configurable = ProxyAddr("")

func (Module) ProxyAddr(
	mode modes.Mode,
	loader configs.Loader,
	logger logs.Logger,
) (ret ProxyAddr) {
	if mode == modes.ModeDevelopment {
		return ""
	}
	ret = cmp.Or(
		configs.First[ProxyAddr](loader, "proxy_addr"),
		ProxyAddr(os.Getenv("ALL_PROXY")),
		ProxyAddr(os.Getenv("all_proxy")),
	)
	if ret != "" {
		logger.Info("proxy", "addr", ret)
	}
	return
}

type GetProxyDialer func() (Dialer, error)

func (Module) GetProxyDialer(
	proxyAddr ProxyAddr,
) GetProxyDialer {
	direct := &net.Dialer{}
	return sync.OnceValues(func() (Dialer, error) {
		if proxyAddr == "" {
			return direct, nil
		}
		u, err := url.Parse(string(proxyAddr))
		if err != nil {
			return nil, err
		}
		if u.Scheme == "socks" {
			u.Scheme = "socks5"
		}
		proxyDialer, err := proxy.FromURL(u, direct)
		if err != nil {
			return nil, err
		}
		if dialer, ok := proxyDialer.(Dialer); ok {
			return dialer, nil
		}
		return DialerFunc(func(_ context.Context, network, addr string) (net.Conn, error) {
			return proxyDialer.Dial(network, addr)
		}), nil
	})
}
