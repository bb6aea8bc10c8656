package set

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/austiecodes/promptrec/internal/provider"
	"github.com/austiecodes/promptrec/internal/utils"
)

func initialModel() Model {
	config, err := utils.LoadConfig()
	if err != nil {
		config = utils.DefaultConfig()
	}

	return Model{
		Screen:     ScreenMainMenu,
		Config:     config,
		List:       createMainMenu(),
		Err:        err,
		save:       utils.SaveConfig,
		listModels: listProviderModels,
	}
}

func listProviderModels(cfg *utils.Config, providerID string) ([]string, error) {
	lister, err := provider.NewModelLister(cfg, providerID)
	if err != nil {
		return nil, err
	}
	return lister.ListModels(context.Background())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetSize(min(msg.Width-4, 80), min(msg.Height-4, 30))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Quitting = true
			return m, tea.Quit

		case "q":
			if m.Screen == ScreenMainMenu {
				m.Quitting = true
				return m, tea.Quit
			}

		case "esc":
			if m.Screen != ScreenMainMenu {
				m.backToMenu()
				return m, nil
			}
		}

	case ModelsLoadedMsg:
		m.StatusMsg = ""
		if msg.Err != nil {
			m.backToMenu()
			m.Err = msg.Err
			return m, nil
		}
		m.List = createModelList(msg.Models)
		m.Screen = ScreenModelSelect
		return m, nil

	case ConfigSavedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.backToMenu()
		m.StatusMsg = "Settings saved!"
		return m, nil
	}

	switch m.Screen {
	case ScreenMainMenu:
		return m.updateMainMenu(msg)
	case ScreenProviderSelect:
		return m.updateProviderSelect(msg)
	case ScreenProviderConfig, ScreenBackendConfig, ScreenSuggestionConfig:
		return m.updateForm(msg)
	case ScreenModelProviderSelect:
		return m.updateModelProviderSelect(msg)
	case ScreenModelSelect:
		return m.updateModelSelect(msg)
	case ScreenConfirmReset:
		return m.updateConfirmReset(msg)
	}

	return m, nil
}

func (m Model) View() string {
	return m.renderView()
}

func (m *Model) backToMenu() {
	m.Screen = ScreenMainMenu
	m.List = createMainMenu()
	m.TextInputs = nil
	m.FocusedInput = 0
	m.StatusMsg = ""
	m.Err = nil
}
