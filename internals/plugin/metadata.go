package plugin

// The unique plugin ID string. It forms the base for all other ID strings
// (category, actions, action data).
const (
	PluginID = "tp.plugin.websockets.golang"

	CategoryMainID = PluginID + ".main"

	ActionSendMessageID     = PluginID + ".act.sendmessage"
	ActionDataDestinationID = ActionSendMessageID + ".data.destination"
	ActionDataMessageID     = ActionSendMessageID + ".data.message"

	// SettingExampleName is the display name TouchPortal keys the setting
	// value by in settings payloads.
	SettingExampleName = "Example Setting"

	// StateSentCountID is created dynamically on connect and mirrors the
	// number of messages sent so far.
	StateSentCountID = PluginID + ".state.sentcount"
)

// Version is the plugin version. TouchPortal only recognizes integer
// version numbers, so 1.0 becomes 100.
const Version = 100

// Entry is the root of the entry.tp plugin descriptor consumed by
// TouchPortal to build its UI and command registry.
type Entry struct {
	SDK            int             `json:"sdk"`
	Version        int             `json:"version"`
	Name           string          `json:"name"`
	ID             string          `json:"id"`
	Configuration  EntryConfig     `json:"configuration"`
	PluginStartCmd string          `json:"plugin_start_cmd"`
	Settings       []EntrySetting  `json:"settings"`
	Categories     []EntryCategory `json:"categories"`
}

type EntryConfig struct {
	ColorDark  string `json:"colorDark"`
	ColorLight string `json:"colorLight"`
}

type EntrySetting struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Default  string `json:"default"`
	ReadOnly bool   `json:"readOnly"`
}

type EntryCategory struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Actions []EntryAction `json:"actions"`
	States  []EntryState  `json:"states"`
	Events  []EntryEvent  `json:"events"`
}

type EntryAction struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Prefix    string            `json:"prefix"`
	Type      string            `json:"type"`
	TryInline bool              `json:"tryInline"`
	Format    string            `json:"format"`
	Data      []EntryActionData `json:"data"`
}

type EntryActionData struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Label   string `json:"label"`
	Default string `json:"default"`
}

type EntryState struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Desc    string `json:"desc"`
	Default string `json:"default"`
}

type EntryEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

// BuildEntry returns the full entry.tp descriptor for this plugin.
func BuildEntry() *Entry {
	return &Entry{
		SDK:     3,
		Version: Version,
		Name:    "Websockets",
		ID:      PluginID,
		Configuration: EntryConfig{
			ColorDark:  "#25274c",
			ColorLight: "#707ab5",
		},
		PluginStartCmd: `%TP_PLUGIN_FOLDER%TPWebsockets\websockets.exe -config config.txt`,
		Settings: []EntrySetting{
			{
				Name:    SettingExampleName,
				Type:    "text",
				Default: "Example value",
			},
		},
		Categories: []EntryCategory{
			{
				ID:   CategoryMainID,
				Name: "Websockets",
				Actions: []EntryAction{
					{
						ID:        ActionSendMessageID,
						Name:      "Send Message",
						Prefix:    "Websockets",
						Type:      "communicate",
						TryInline: true,
						Format: "Send the text string {$" + ActionDataMessageID +
							"$} to {$" + ActionDataDestinationID + "$}",
						Data: []EntryActionData{
							{
								ID:      ActionDataDestinationID,
								Type:    "text",
								Label:   "Destination",
								Default: "<None>",
							},
							{
								ID:      ActionDataMessageID,
								Type:    "text",
								Label:   "Message",
								Default: "<None>",
							},
						},
					},
				},
				States: []EntryState{},
				Events: []EntryEvent{},
			},
		},
	}
}
