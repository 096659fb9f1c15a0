package schema

// TabEventType describes a tab registry change.
type TabEventType string

const (
	// TabEventOpened indicates a tab was opened.
	TabEventOpened TabEventType = "opened"
	// TabEventClosed indicates a tab was closed.
	TabEventClosed TabEventType = "closed"
	// TabEventActivated indicates a tab became the active tab.
	TabEventActivated TabEventType = "activated"
	// TabEventStatus indicates a tab's execution state changed.
	TabEventStatus TabEventType = "status"
	// TabEventUpdated indicates tab metadata changed.
	TabEventUpdated TabEventType = "updated"
)

// TabEvent is emitted to sinks whenever the registry mutates a tab.
type TabEvent struct {
	Type      TabEventType
	Tab       TabSnapshot
	ActiveTab TabID
	Theme     ThemeName
}
