package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/openanyterminal/linux/pkg/menu"
)

// TryConnect attempts to connect to a running bridge socket.
func TryConnect(socketPath string) (net.Conn, error) {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	// Check if socket exists
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}

	return conn, nil
}

// Client wraps one bridge connection after a successful handshake.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder

	// BridgeVersion and Accel are filled from the handshake reply.
	BridgeVersion string
	Accel         *Accel
}

// Dial connects to the bridge and performs the hello handshake, announcing
// the given host API version.
func Dial(socketPath string, apiVersion int) (*Client, error) {
	conn, err := TryConnect(socketPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}

	resp, err := c.roundTrip(&Request{Type: RequestHello, APIVersion: apiVersion})
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.BridgeVersion = resp.BridgeVersion
	c.Accel = resp.Accel
	return c, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// FileItems asks the bridge for the menu entries of a file selection.
func (c *Client) FileItems(selection []menu.FileInfo) ([]menu.Item, error) {
	resp, err := c.roundTrip(&Request{Type: RequestFileItems, Files: selection})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// BackgroundItems asks the bridge for the menu entries of a folder view.
func (c *Client) BackgroundItems(folder menu.FileInfo) ([]menu.Item, error) {
	resp, err := c.roundTrip(&Request{Type: RequestBackgroundItems, File: &folder})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Activate asks the bridge to open the configured terminal at uri.
func (c *Client) Activate(name, uri string) error {
	_, err := c.roundTrip(&Request{Type: RequestActivate, Name: name, URI: uri})
	return err
}

// Shortcut asks the bridge for the keyboard accelerator. Only answered on
// connections that announced an API version with the shortcut surface.
func (c *Client) Shortcut() (Accel, error) {
	resp, err := c.roundTrip(&Request{Type: RequestShortcut})
	if err != nil {
		return Accel{}, err
	}
	if resp.Accel == nil {
		return Accel{}, errors.New("bridge returned no accelerator")
	}
	return *resp.Accel, nil
}

func (c *Client) roundTrip(req *Request) (*Response, error) {
	if err := c.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !resp.OK {
		if resp.Error != "" {
			return nil, errors.New(resp.Error)
		}
		return nil, errors.New("bridge refused the request")
	}
	return &resp, nil
}
