// Package feed connects to the combat feed websocket and turns its messages
// into tracker calls.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

// Client is one websocket connection. Messages arrive on Messages until the
// connection drops, at which point the channel is closed.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	inCh   chan protocol.MsgEnvelope
	done   chan struct{}
	closed bool
}

// Dial connects to wsURL. A non-empty token is sent as a bearer header and
// as the token query parameter.
func Dial(ctx context.Context, wsURL, token string) (*Client, error) {
	tok := strings.TrimSpace(token)
	hdr := http.Header{}
	if tok != "" {
		hdr.Set("Authorization", "Bearer "+tok)
		if u, err := neturl.Parse(wsURL); err == nil {
			q := u.Query()
			q.Set("token", tok)
			u.RawQuery = q.Encode()
			wsURL = u.String()
		}
	}

	dialer := websocket.Dialer{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		Proxy: func(*http.Request) (*neturl.URL, error) {
			return nil, nil // disable proxies
		},
	}

	c, resp, err := dialer.DialContext(ctx, wsURL, hdr)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			return nil, fmt.Errorf("feed: dial %s: %s: %s", redact(wsURL), resp.Status, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("feed: dial %s: %w", redact(wsURL), err)
	}

	cl := &Client{conn: c, inCh: make(chan protocol.MsgEnvelope, 128), done: make(chan struct{})}
	go cl.reader()
	return cl, nil
}

// redact hides the token query parameter in log output.
func redact(raw string) string {
	u, err := neturl.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "xxx")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) reader() {
	defer close(c.inCh)
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !c.IsClosed() {
				log.Printf("feed: read: %v", err)
			}
			c.mu.Lock()
			c.closed = true
			c.conn = nil
			c.mu.Unlock()
			return
		}
		var m protocol.MsgEnvelope
		if err := json.Unmarshal(data, &m); err != nil {
			log.Printf("feed: dropping malformed message: %v", err)
			continue
		}
		select {
		case c.inCh <- m:
		case <-c.done:
			return
		}
	}
}

// Messages yields decoded envelopes in arrival order.
func (c *Client) Messages() <-chan protocol.MsgEnvelope { return c.inCh }

// IsClosed reports whether Close() was called or the connection was torn down.
func (c *Client) IsClosed() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes the websocket and marks the client as closed.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()
	close(c.done)

	if conn == nil {
		return nil
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return conn.Close()
}

// Run keeps a connection to wsURL open until ctx ends, forwarding every
// message to out. Dropped connections are redialed after retry.
func Run(ctx context.Context, wsURL, token string, retry time.Duration, out chan<- protocol.MsgEnvelope) {
	for {
		cl, err := Dial(ctx, wsURL, token)
		if err != nil {
			log.Printf("%v", err)
		} else {
			log.Printf("feed: connected to %s", redact(wsURL))
			forward(ctx, cl, out)
			_ = cl.Close()
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}

func forward(ctx context.Context, cl *Client, out chan<- protocol.MsgEnvelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-cl.Messages():
			if !ok {
				log.Printf("feed: disconnected")
				return
			}
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	}
}
