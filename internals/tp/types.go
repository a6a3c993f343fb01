package tp

// Message types sent by the TouchPortal desktop application over the
// control channel.
const (
	MessageTypeInfo        = "info"
	MessageTypeSettings    = "settings"
	MessageTypeAction      = "action"
	MessageTypeClosePlugin = "closePlugin"
)

// envelope carries the fields common to every inbound message, enough to
// route it to the right typed decode.
type envelope struct {
	Type     string `json:"type"`
	PluginID string `json:"pluginId"`
}

// SettingsList is the host's wire form for settings: an array of
// single-pair objects, e.g. [{"Example Setting":"value"}].
type SettingsList []map[string]string

// Flatten collapses the array-of-single-pair-objects form into one map.
func (l SettingsList) Flatten() map[string]string {
	out := make(map[string]string, len(l))
	for _, entry := range l {
		for name, value := range entry {
			out[name] = value
		}
	}
	return out
}

// InfoMessage is the host's reply to the pair handshake. It carries the
// host and plugin versions plus the current settings values.
type InfoMessage struct {
	SDKVersion      int          `json:"sdkVersion"`
	TPVersionString string       `json:"tpVersionString"`
	TPVersionCode   int          `json:"tpVersionCode"`
	PluginVersion   int          `json:"pluginVersion"`
	Settings        SettingsList `json:"settings"`
}

// SettingsMessage is pushed whenever the user edits the plugin settings.
type SettingsMessage struct {
	Values SettingsList `json:"values"`
}

// ActionData is one {id, value} entry of an action invocation.
type ActionData struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ActionMessage signals that the user triggered a configured action.
type ActionMessage struct {
	PluginID string       `json:"pluginId"`
	ActionID string       `json:"actionId"`
	Data     []ActionData `json:"data"`
}

// DataValue returns the value of the data entry with the given id, or the
// empty string when no such entry exists.
func (m *ActionMessage) DataValue(id string) string {
	for _, d := range m.Data {
		if d.ID == id {
			return d.Value
		}
	}
	return ""
}

// Handlers holds one callback per host event variant. Nil callbacks are
// skipped. Errors returned by OnConnect, OnSettings or OnAction are routed
// to OnError exactly once. OnShutdown runs at most once per connection,
// whether the host asked the plugin to close or the link simply dropped.
type Handlers struct {
	OnConnect  func(*InfoMessage) error
	OnSettings func(map[string]string) error
	OnAction   func(*ActionMessage) error
	OnShutdown func()
	OnError    func(error)
}

type pairMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type stateUpdateMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Value string `json:"value"`
}

type createStateMessage struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Desc    string `json:"desc"`
	Default string `json:"defaultValue"`
}
