package tp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAddr is where the TouchPortal desktop application listens for
	// plugin connections.
	DefaultAddr = "127.0.0.1:12136"

	// defaultWorkers bounds how many event handlers may run at once.
	defaultWorkers = 4

	// maxMessageSize caps a single control-channel line.
	maxMessageSize = 1024 * 1024
)

// Client maintains the control connection to the TouchPortal desktop
// application and dispatches inbound events to the registered handlers.
type Client struct {
	pluginID string
	addr     string
	workers  int
	logger   *logrus.Logger
	handlers Handlers

	// writeMu guards conn: assignment in Connect, writes in send, and the
	// close in Close.
	conn    net.Conn
	writeMu sync.Mutex

	closed       atomic.Bool
	shutdownOnce sync.Once
}

type Option func(*Client)

// WithAddr overrides the TouchPortal host address.
func WithAddr(addr string) Option {
	return func(c *Client) { c.addr = addr }
}

// WithWorkers overrides the size of the handler worker pool.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

func NewClient(pluginID string, logger *logrus.Logger, handlers Handlers, opts ...Option) *Client {
	c := &Client{
		pluginID: pluginID,
		addr:     DefaultAddr,
		workers:  defaultWorkers,
		logger:   logger,
		handlers: handlers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the TouchPortal host, pairs, and blocks until the
// connection drops or the host asks the plugin to close. All registered
// handlers have finished by the time Connect returns.
func (c *Client) Connect() error {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to TouchPortal at %s: %w", c.addr, err)
	}
	c.writeMu.Lock()
	c.conn = conn
	c.writeMu.Unlock()
	if c.closed.Load() {
		// Close raced ahead of the dial and found no conn to drop yet.
		conn.Close()
		return nil
	}
	defer c.Close()

	if err := c.send(pairMessage{Type: "pair", ID: c.pluginID}); err != nil {
		return fmt.Errorf("failed to pair with TouchPortal: %w", err)
	}

	events := make(chan []byte, c.workers)
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range events {
				c.dispatch(raw)
			}
		}()
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	for scanner.Scan() {
		// The scanner reuses its buffer between lines.
		raw := make([]byte, len(scanner.Bytes()))
		copy(raw, scanner.Bytes())
		events <- raw
	}
	close(events)
	wg.Wait()

	// The link is gone either way; let the plugin know once.
	c.runShutdown()

	if c.closed.Load() {
		// Intentional shutdown; the read error is just the closed socket.
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("TouchPortal connection lost: %w", err)
	}
	return nil
}

// dispatch routes one inbound line to its typed handler.
func (c *Client) dispatch(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.WithError(err).Warn("Dropping unparseable message from host")
		return
	}
	if env.PluginID != "" && env.PluginID != c.pluginID {
		c.logger.WithField("plugin_id", env.PluginID).Debug("Ignoring message addressed to another plugin")
		return
	}

	switch env.Type {
	case MessageTypeInfo:
		var msg InfoMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reportError(fmt.Errorf("failed to parse info message: %w", err))
			return
		}
		if c.handlers.OnConnect != nil {
			c.reportError(c.handlers.OnConnect(&msg))
		}
	case MessageTypeSettings:
		var msg SettingsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reportError(fmt.Errorf("failed to parse settings message: %w", err))
			return
		}
		if c.handlers.OnSettings != nil {
			c.reportError(c.handlers.OnSettings(msg.Values.Flatten()))
		}
	case MessageTypeAction:
		var msg ActionMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reportError(fmt.Errorf("failed to parse action message: %w", err))
			return
		}
		if c.handlers.OnAction != nil {
			c.reportError(c.handlers.OnAction(&msg))
		}
	case MessageTypeClosePlugin:
		c.logger.Info("Received close request from TouchPortal")
		c.runShutdown()
		c.Close()
	default:
		c.logger.WithField("type", env.Type).Debug("Ignoring unhandled message type")
	}
}

// runShutdown fires the shutdown handler at most once per connection.
func (c *Client) runShutdown() {
	c.shutdownOnce.Do(func() {
		if c.handlers.OnShutdown != nil {
			c.handlers.OnShutdown()
		}
	})
}

// reportError routes a handler error to OnError, falling back to the
// logger when no error handler is registered.
func (c *Client) reportError(err error) {
	if err == nil {
		return
	}
	if c.handlers.OnError != nil {
		c.handlers.OnError(err)
		return
	}
	c.logger.WithError(err).Error("Error in event handler")
}

func (c *Client) send(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected to TouchPortal")
	}
	return json.NewEncoder(c.conn).Encode(v)
}

// UpdateState pushes a state value to the host.
func (c *Client) UpdateState(id, value string) error {
	return c.send(stateUpdateMessage{Type: "stateUpdate", ID: id, Value: value})
}

// CreateState registers a dynamic state with the host at runtime.
func (c *Client) CreateState(id, desc, defaultValue string) error {
	return c.send(createStateMessage{Type: "createState", ID: id, Desc: desc, Default: defaultValue})
}

// Close drops the control connection. Safe to call from any goroutine and
// more than once, including before or during Connect; Connect returns nil
// after an intentional close.
func (c *Client) Close() {
	c.closed.Store(true)
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
}
