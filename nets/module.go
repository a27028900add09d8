package nets

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/configs"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/stepvm"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

type ListenAddr string

func (l ListenAddr) ConfigExpr() string {
	return "ListenAddr"
}

var _ configs.Configurable = ListenAddr("")

func (Module) ListenAddr(
	loader configs.Loader,
) ListenAddr {
	return configs.FirstOr[ListenAddr](loader, "listen_addr", "127.0.0.1:7878")
}

// DebuggerPath is where the websocket endpoint is mounted.
const DebuggerPath = "/debugger"

// Serve listens on ListenAddr until ctx is done.
type Serve func(ctx context.Context, driver *stepvm.Driver) error

func (Module) Serve(
	addr ListenAddr,
	logger logs.Logger,
	newSpan logs.NewSpan,
) Serve {
	return func(ctx context.Context, driver *stepvm.Driver) error {
		mux := http.NewServeMux()
		mux.Handle(DebuggerPath, NewServer(driver, logger, newSpan).Handler())
		server := &http.Server{
			Handler: mux,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		}
		ln, err := net.Listen("tcp", string(addr))
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "debugger listening", "addr", ln.Addr().String(), "path", DebuggerPath)

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
