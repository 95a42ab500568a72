// ABOUTME: Thin WebSocket transport for the Sendspin protocol
// ABOUTME: Dials the server and exposes a frame-level read/write surface; no handshake or protocol logic
package transport

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 5 * time.Second
	readLimit    = 16 << 20 // 16MiB, generous enough for artwork frames
)

// Conn wraps a gorilla/websocket connection with the minimal surface the
// player orchestrator needs: send a JSON message, send a binary frame,
// receive whichever comes next. It does not know about client/hello,
// server/hello, or any other message semantics.
type Conn struct {
	ws *websocket.Conn

	writeMu sync.Mutex
}

// Dial opens a WebSocket connection to url. The caller is responsible for
// driving the handshake over the returned Conn.
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", url, err)
	}
	ws.SetReadLimit(readLimit)
	log.Debugf("transport: connected to %s", url)
	return &Conn{ws: ws}, nil
}

// WriteJSON marshals v and sends it as a text frame.
func (c *Conn) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("transport: marshal message: %w", err)
	}
	return c.writeText(data)
}

func (c *Conn) writeText(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// WriteBinary sends a pre-framed binary payload as-is.
func (c *Conn) WriteBinary(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

// ReadFrame blocks for the next frame and reports whether it was binary.
// Ping/pong/close control frames are handled transparently by the
// underlying library and never surface here; a close results in err.
func (c *Conn) ReadFrame() (isBinary bool, data []byte, err error) {
	msgType, data, err := c.ws.ReadMessage()
	if err != nil {
		return false, nil, fmt.Errorf("transport: read: %w", err)
	}
	return msgType == websocket.BinaryMessage, data, nil
}

// Close sends a close frame and releases the underlying connection.
func (c *Conn) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.ws.Close()
}

// IsUnexpectedClose reports whether err represents a close the caller
// should treat as an error rather than a clean shutdown.
func IsUnexpectedClose(err error) bool {
	return websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
