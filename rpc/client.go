package rpc

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/ybbus/jsonrpc"
	"golang.org/x/net/websocket"
)

// Client calls the node's JSON-RPC methods, e.g. Call("sd.GetStatus", &GetStatusArgs{}, &res).
type Client interface {
	Call(method string, args interface{}, result interface{}) error
}

// NewClient returns a websocket client for ".../ws" endpoints and an HTTP
// client otherwise.
func NewClient(url string) (Client, error) {
	if strings.HasSuffix(url, "/ws") {
		return newWSClient(url)
	}
	return newHTTPClient(url), nil
}

//
// --------------------- HTTP client -------------------------
//

type HTTPClient struct {
	*jsonrpc.RPCClient
}

func newHTTPClient(url string) HTTPClient {
	return HTTPClient{jsonrpc.NewRPCClient(url)}
}

func (c HTTPClient) Call(method string, args interface{}, result interface{}) error {
	res, err := c.RPCClient.Call(method, args)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return res.GetObject(result)
}

//
// --------------------- WebSocket client -------------------------
//

type WSClient struct {
	*jsonrpc2.Client
	ws  *websocket.Conn
	url string
}

func newWSClient(url string) (*WSClient, error) {
	ws, err := websocket.Dial(url, "", url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %v", url)
	}
	return &WSClient{
		url:    url,
		ws:     ws,
		Client: jsonrpc2.NewClient(ws),
	}, nil
}

func (c *WSClient) Call(method string, args interface{}, result interface{}) error {
	err := c.Client.Call(method, args, result)
	if err != nil && err.Error() == "connection is shut down" {
		c.ws, err = websocket.Dial(c.url, "", c.url)
		if err != nil {
			return err
		}
		c.Client = jsonrpc2.NewClient(c.ws)
		return c.Client.Call(method, args, result)
	}
	return err
}

// Close closes the websocket connection.
func (c *WSClient) Close() error {
	return c.Client.Close()
}
