package plugin

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"TPWebsockets/internals/tp"
)

// StateWriter pushes state values to the TouchPortal host.
type StateWriter interface {
	CreateState(id, desc, defaultValue string) error
	UpdateState(id, value string) error
}

// Plugin owns the mirrored settings values and turns host events into
// outbound websocket sends.
type Plugin struct {
	logger *logrus.Logger
	host   StateWriter

	mu          sync.RWMutex
	settings    map[string]string
	hostVersion string
	connected   bool

	sendsAttempted atomic.Uint64
	sendsFailed    atomic.Uint64
}

func New(logger *logrus.Logger) *Plugin {
	return &Plugin{
		logger:   logger,
		settings: make(map[string]string),
	}
}

// BindHost attaches the host link the plugin pushes state values through.
// Must be called before the link starts delivering events.
func (p *Plugin) BindHost(host StateWriter) {
	p.host = host
}

// Handlers binds this plugin's callbacks for the host link.
func (p *Plugin) Handlers() tp.Handlers {
	return tp.Handlers{
		OnConnect:  p.onConnect,
		OnSettings: p.onSettings,
		OnAction:   p.onAction,
		OnShutdown: p.onShutdown,
		OnError:    p.onError,
	}
}

func (p *Plugin) onConnect(msg *tp.InfoMessage) error {
	p.logger.WithFields(logrus.Fields{
		"tp_version":     msg.TPVersionString,
		"plugin_version": msg.PluginVersion,
	}).Info("Connected to TouchPortal")

	p.mu.Lock()
	p.connected = true
	p.hostVersion = msg.TPVersionString
	p.mu.Unlock()

	p.applySettings(msg.Settings.Flatten())

	if p.host != nil {
		if err := p.host.CreateState(StateSentCountID, "Messages sent", "0"); err != nil {
			p.logger.WithError(err).Warn("Failed to create sent-count state")
		}
	}
	return nil
}

func (p *Plugin) onSettings(values map[string]string) error {
	p.logger.WithField("settings", values).Debug("Settings updated")
	p.applySettings(values)
	return nil
}

func (p *Plugin) applySettings(values map[string]string) {
	if len(values) == 0 {
		return
	}
	p.mu.Lock()
	for name, value := range values {
		p.settings[name] = value
	}
	p.mu.Unlock()
}

// Setting returns the mirrored value of a host-persisted setting, or the
// empty string when the host never sent it.
func (p *Plugin) Setting(name string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings[name]
}

// onAction handles one action invocation. Incomplete invocations are
// ignored; unknown action IDs get a warning and no dispatch; send failures
// are returned so the host link reports them through the error path.
func (p *Plugin) onAction(msg *tp.ActionMessage) error {
	if msg.ActionID == "" || len(msg.Data) == 0 {
		return nil
	}
	if msg.ActionID != ActionSendMessageID {
		p.logger.WithField("action_id", msg.ActionID).Warn("Got unknown action ID")
		return nil
	}

	destination := msg.DataValue(ActionDataDestinationID)
	message := msg.DataValue(ActionDataMessageID)

	p.logger.WithFields(logrus.Fields{
		"invocation_id": uuid.NewString(),
		"destination":   destination,
	}).Info("Dispatching message")

	p.sendsAttempted.Add(1)
	if err := SendMessage(destination, message); err != nil {
		p.sendsFailed.Add(1)
		return err
	}
	p.pushSentCount()
	return nil
}

// pushSentCount mirrors the successful-send count into a TouchPortal
// state, best effort: a failed push is logged, never surfaced.
func (p *Plugin) pushSentCount() {
	if p.host == nil {
		return
	}
	sent := p.sendsAttempted.Load() - p.sendsFailed.Load()
	if err := p.host.UpdateState(StateSentCountID, strconv.FormatUint(sent, 10)); err != nil {
		p.logger.WithError(err).Warn("Failed to update sent-count state")
	}
}

// onShutdown runs when the host asks the plugin to close or the link
// drops.
func (p *Plugin) onShutdown() {
	p.logger.Info("TouchPortal link closed")
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
}

func (p *Plugin) onError(err error) {
	p.logger.WithError(err).Error("Error in event handler")
}

// Status is a point-in-time snapshot for the status endpoint.
type Status struct {
	Connected      bool   `json:"connected"`
	HostVersion    string `json:"host_version,omitempty"`
	ExampleSetting string `json:"example_setting,omitempty"`
	SendsAttempted uint64 `json:"sends_attempted"`
	SendsFailed    uint64 `json:"sends_failed"`
}

func (p *Plugin) Status() Status {
	p.mu.RLock()
	connected := p.connected
	hostVersion := p.hostVersion
	p.mu.RUnlock()
	return Status{
		Connected:      connected,
		HostVersion:    hostVersion,
		ExampleSetting: p.Setting(SettingExampleName),
		SendsAttempted: p.sendsAttempted.Load(),
		SendsFailed:    p.sendsFailed.Load(),
	}
}
