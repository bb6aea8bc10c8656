package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/austiecodes/promptrec/internal/store"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenRequestList Screen = iota
	ScreenRequestDetail
	ScreenConfirmClear
)

// RequestListItem implements list.Item for one logged request
type RequestListItem struct {
	Record store.RequestRecord
}

func (i RequestListItem) Title() string { return i.Record.Query }
func (i RequestListItem) Description() string {
	return fmt.Sprintf("%s · %s · %s · %s",
		i.Record.Kind, i.Record.Status, i.Record.Latency, i.Record.CreatedAt.Format("2006-01-02 15:04"))
}
func (i RequestListItem) FilterValue() string { return i.Record.Query }

// RequestSource is the part of the store the history browser reads.
type RequestSource interface {
	Recent(limit int) ([]store.RequestRecord, error)
	Clear() error
}

// Model is the Bubble Tea model for the history command
type Model struct {
	Screen    Screen
	List      list.Model
	Source    RequestSource
	Limit     int
	Selected  *store.RequestRecord
	Records   []store.RequestRecord
	Err       error
	StatusMsg string
	Quitting  bool
	Width     int
	Height    int
}

// RecordsLoadedMsg is sent when records are loaded from the store
type RecordsLoadedMsg struct {
	Records []store.RequestRecord
	Err     error
}

// RecordsClearedMsg is sent when the log is cleared
type RecordsClearedMsg struct {
	Err error
}
