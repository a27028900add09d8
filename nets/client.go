package nets

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/websocket"
)

// Client talks to a Server. It is not safe for concurrent use.
type Client struct {
	conn    *websocket.Conn
	serial  int
	pending map[int]Message
	events  []Message
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn:    conn,
		pending: make(map[int]Message),
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Send assigns a request id and returns it without waiting for the response.
func (c *Client) Send(req Request) (int, error) {
	c.serial++
	req.ID = c.serial
	if err := websocket.JSON.Send(c.conn, req); err != nil {
		return 0, err
	}
	return req.ID, nil
}

func (c *Client) receive() (Message, error) {
	var msg Message
	if err := websocket.JSON.Receive(c.conn, &msg); err != nil {
		return msg, err
	}
	return msg, nil
}

// Wait blocks until the response to id arrives. Events received meanwhile are queued for NextEvent.
func (c *Client) Wait(id int) (Message, error) {
	msg, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
		return response(msg)
	}
	for {
		msg, err := c.receive()
		if err != nil {
			return msg, err
		}
		switch msg.ID {
		case id:
			return response(msg)
		case 0:
			c.events = append(c.events, msg)
		default:
			c.pending[msg.ID] = msg
		}
	}
}

func (c *Client) NextEvent() (Message, error) {
	if len(c.events) > 0 {
		msg := c.events[0]
		c.events = c.events[1:]
		return msg, nil
	}
	for {
		msg, err := c.receive()
		if err != nil {
			return msg, err
		}
		if msg.ID == 0 {
			return msg, nil
		}
		c.pending[msg.ID] = msg
	}
}

func (c *Client) Do(req Request) (Message, error) {
	id, err := c.Send(req)
	if err != nil {
		return Message{}, err
	}
	return c.Wait(id)
}

func response(msg Message) (Message, error) {
	if msg.Error != "" {
		return msg, fmt.Errorf("%w: %s", ErrRemote, msg.Error)
	}
	return msg, nil
}

const clientOrigin = "http://localhost/"

type DialDebugger func(ctx context.Context, url string) (*Client, error)

func (Module) DialDebugger(
	dialer Dialer,
) DialDebugger {
	return func(ctx context.Context, url string) (*Client, error) {
		config, err := websocket.NewConfig(url, clientOrigin)
		if err != nil {
			return nil, err
		}
		if config.Location.Scheme != "ws" {
			return nil, fmt.Errorf("unsupported scheme: %s", config.Location.Scheme)
		}
		addr := config.Location.Host
		if config.Location.Port() == "" {
			addr = net.JoinHostPort(config.Location.Hostname(), "80")
		}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		ws, err := websocket.NewClient(config, conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return NewClient(ws), nil
	}
}
