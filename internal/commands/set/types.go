package set

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/austiecodes/promptrec/internal/utils"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenProviderSelect
	ScreenProviderConfig
	ScreenModelProviderSelect
	ScreenModelSelect
	ScreenBackendConfig
	ScreenSuggestionConfig
	ScreenConfirmReset
)

// Main menu entries
const (
	MenuItemProvider    = "provider"
	MenuItemChatModel   = "chat-model"
	MenuItemBackend     = "backend"
	MenuItemSuggestions = "suggestions"
	MenuItemReset       = "reset-suggestions"
	MenuItemExit        = "exit"
)

// MenuItem implements list.Item interface
type MenuItem struct {
	title string
	desc  string
}

func (i MenuItem) Title() string       { return i.title }
func (i MenuItem) Description() string { return i.desc }
func (i MenuItem) FilterValue() string { return i.title }

// Model is the Bubble Tea model for the set command
type Model struct {
	Screen           Screen
	Config           *utils.Config
	List             list.Model
	TextInputs       []textinput.Model
	FocusedInput     int
	SelectedProvider string
	StatusMsg        string
	Err              error
	Quitting         bool
	Width            int
	Height           int

	save       func(*utils.Config) error
	listModels func(cfg *utils.Config, providerID string) ([]string, error)
}

// ModelsLoadedMsg is sent when models are loaded from the provider API
type ModelsLoadedMsg struct {
	Models []string
	Err    error
}

// ConfigSavedMsg is sent when config is saved
type ConfigSavedMsg struct {
	Err error
}
