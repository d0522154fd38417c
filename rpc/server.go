package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/netutil"
	"golang.org/x/net/websocket"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/util"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger"
)

// ServiceName is the JSON-RPC namespace, methods are called as "sd.GetStatus".
const ServiceName = "sd"

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "rpc"})

// StakeDelegationRPCService implements the JSON-RPC methods.
type StakeDelegationRPCService struct {
	ledger    *ledger.Ledger
	txEnabled bool

	// Life cycle
	wg      *sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

// StakeDelegationRPCServer is an instance of RPC service.
type StakeDelegationRPCServer struct {
	*StakeDelegationRPCService

	server   *http.Server
	handler  *rpc.Server
	router   *mux.Router
	listener net.Listener
}

// NewStakeDelegationRPCServer creates a new instance of StakeDelegationRPCServer.
// The /metrics endpoint is served from gatherer when metrics are enabled.
func NewStakeDelegationRPCServer(ledger *ledger.Ledger, gatherer prometheus.Gatherer) *StakeDelegationRPCServer {
	logger = util.GetLoggerForModule("rpc")

	t := &StakeDelegationRPCServer{
		StakeDelegationRPCService: &StakeDelegationRPCService{
			ledger:    ledger,
			txEnabled: viper.GetBool(common.CfgRPCTxEnabled),
			wg:        &sync.WaitGroup{},
		},
	}

	s := rpc.NewServer()
	if err := s.RegisterName(ServiceName, t.StakeDelegationRPCService); err != nil {
		log.Panic(err)
	}
	t.handler = s

	timeout := time.Duration(viper.GetInt(common.CfgRPCTimeoutSecs)) * time.Second
	t.router = mux.NewRouter()
	t.router.Handle("/", &defaultHTTPHandler{})
	t.router.Handle("/rpc", corsMiddleware(http.TimeoutHandler(jsonrpc2.HTTPHandler(s), timeout, "")))
	t.router.Handle("/ws", websocket.Handler(func(ws *websocket.Conn) {
		s.ServeCodec(jsonrpc2.NewServerCodec(ws, s))
	}))
	if gatherer != nil && viper.GetBool(common.CfgMetricsEnabled) {
		t.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	t.server = &http.Server{
		Handler:           t.router,
		ReadHeaderTimeout: timeout,
	}

	return t
}

// Start binds the listener and creates the main goroutine.
func (t *StakeDelegationRPCServer) Start(ctx context.Context) error {
	address := viper.GetString(common.CfgRPCAddress)
	port := viper.GetString(common.CfgRPCPort)
	l, err := net.Listen("tcp", net.JoinHostPort(address, port))
	if err != nil {
		return errors.Wrap(err, "failed to create listener")
	}
	t.listener = netutil.LimitListener(l, viper.GetInt(common.CfgRPCMaxConnections))
	logger.WithFields(log.Fields{"address": l.Addr().String()}).Info("RPC server started")

	c, cancel := context.WithCancel(ctx)
	t.ctx = c
	t.cancel = cancel

	t.wg.Add(1)
	go t.mainLoop()

	t.wg.Add(1)
	go t.serve()

	return nil
}

func (t *StakeDelegationRPCServer) mainLoop() {
	defer t.wg.Done()

	<-t.ctx.Done()
	t.stopped = true

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("RPC server shutdown: %v", err)
	}
}

func (t *StakeDelegationRPCServer) serve() {
	defer t.wg.Done()

	if err := t.server.Serve(t.listener); err != nil && err != http.ErrServerClosed {
		logger.Errorf("RPC server stopped: %v", err)
	}
}

// Addr returns the address the server listens on, nil before Start.
func (t *StakeDelegationRPCServer) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Router exposes the HTTP routes, mostly for tests.
func (t *StakeDelegationRPCServer) Router() http.Handler {
	return t.router
}

func corsMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// Stop notifies all goroutines to stop without blocking.
func (t *StakeDelegationRPCServer) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Wait blocks until all goroutines stop.
func (t *StakeDelegationRPCServer) Wait() {
	t.wg.Wait()
}

type defaultHTTPHandler struct {
}

func (dh *defaultHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Stake delegation node is up and running!")
}
