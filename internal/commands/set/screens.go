package set

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/consts"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

func (m *Model) updateMainMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			selected, ok := m.List.SelectedItem().(MenuItem)
			if !ok {
				return *m, nil
			}
			m.StatusMsg = ""
			m.Err = nil
			switch selected.Title() {
			case MenuItemProvider:
				m.List = createProviderList(false)
				m.Screen = ScreenProviderSelect
			case MenuItemChatModel:
				m.List = createProviderList(true)
				m.Screen = ScreenModelProviderSelect
			case MenuItemBackend:
				return m.openForm(ScreenBackendConfig)
			case MenuItemSuggestions:
				return m.openForm(ScreenSuggestionConfig)
			case MenuItemReset:
				m.Screen = ScreenConfirmReset
			case MenuItemExit:
				m.Quitting = true
				return *m, tea.Quit
			}
			return *m, nil
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return *m, cmd
}

func (m *Model) openForm(screen Screen) (tea.Model, tea.Cmd) {
	switch screen {
	case ScreenProviderConfig:
		m.TextInputs = createProviderConfigInputs(m.Config, m.SelectedProvider)
	case ScreenBackendConfig:
		m.TextInputs = createBackendConfigInputs(m.Config)
	case ScreenSuggestionConfig:
		m.TextInputs = createSuggestionConfigInputs(m.Config)
	}
	m.FocusedInput = 0
	m.Screen = screen
	return *m, m.TextInputs[0].Focus()
}

func (m *Model) updateProviderSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			selected, ok := m.List.SelectedItem().(MenuItem)
			if !ok {
				return *m, nil
			}
			m.SelectedProvider = selected.Title()
			return m.openForm(ScreenProviderConfig)
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return *m, cmd
}

// updateForm handles navigation for every text-input screen and hands
// enter to the screen's submit.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.TextInputs[m.FocusedInput].Blur()
			m.FocusedInput = (m.FocusedInput + 1) % len(m.TextInputs)
			return *m, m.TextInputs[m.FocusedInput].Focus()

		case "shift+tab", "up":
			m.TextInputs[m.FocusedInput].Blur()
			m.FocusedInput = (m.FocusedInput - 1 + len(m.TextInputs)) % len(m.TextInputs)
			return *m, m.TextInputs[m.FocusedInput].Focus()

		case "enter":
			var err error
			switch m.Screen {
			case ScreenProviderConfig:
				err = m.applyProviderConfig()
			case ScreenBackendConfig:
				err = m.applyBackendConfig()
			case ScreenSuggestionConfig:
				err = m.applySuggestionConfig()
			}
			if err != nil {
				m.Err = err
				return *m, nil
			}
			m.Err = nil
			return *m, m.saveConfig()
		}
	}

	// Update focused text input
	var cmd tea.Cmd
	m.TextInputs[m.FocusedInput], cmd = m.TextInputs[m.FocusedInput].Update(msg)
	return *m, cmd
}

func (m *Model) applyProviderConfig() error {
	apiKey := strings.TrimSpace(m.TextInputs[0].Value())
	baseURL := strings.TrimSpace(m.TextInputs[1].Value())
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}

	pc, ok := m.Config.Providers.Get(m.SelectedProvider)
	if !ok {
		return fmt.Errorf("unsupported provider: %s", m.SelectedProvider)
	}
	pc.APIKey = apiKey
	pc.BaseURL = baseURL
	return nil
}

func (m *Model) applyBackendConfig() error {
	rawURL := strings.TrimSpace(m.TextInputs[0].Value())
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend URL must be an http(s) URL, got %q", rawURL)
	}

	timeout, err := strconv.Atoi(strings.TrimSpace(m.TextInputs[1].Value()))
	if err != nil || timeout < 1 {
		return fmt.Errorf("timeout must be a positive integer")
	}

	ttl, err := strconv.Atoi(strings.TrimSpace(m.TextInputs[2].Value()))
	if err != nil || ttl == 0 {
		return fmt.Errorf("cache TTL must be a non-zero integer")
	}

	m.Config.Backend.BaseURL = strings.TrimRight(rawURL, "/")
	m.Config.Backend.TimeoutSeconds = timeout
	m.Config.Backend.CacheTTLSeconds = ttl
	return nil
}

func (m *Model) applySuggestionConfig() error {
	topK := m.TextInputs[0].Value()
	distanceFilter := m.TextInputs[1].Value()
	update := suggest.Update{
		TopK:           &topK,
		DistanceFilter: &distanceFilter,
		Weights:        make(map[types.Feature]string, len(types.KnownFeatures)),
	}
	for i, f := range types.KnownFeatures {
		update.Weights[f] = m.TextInputs[2+i].Value()
	}

	next, err := m.Config.Suggestions.Apply(update)
	if err != nil {
		return err
	}
	m.Config.Suggestions = next
	return nil
}

func (m *Model) updateModelProviderSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			selected, ok := m.List.SelectedItem().(MenuItem)
			if !ok {
				return *m, nil
			}
			providerID := selected.Title()
			if providerID == consts.ProviderBackend {
				m.Config.Model.ChatModel = &types.Model{Provider: consts.ProviderBackend}
				return *m, m.saveConfig()
			}
			m.SelectedProvider = providerID
			m.StatusMsg = "Loading models..."
			return *m, m.loadModelsForProvider(providerID)
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return *m, cmd
}

func (m *Model) updateModelSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.List.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			selected, ok := m.List.SelectedItem().(MenuItem)
			if !ok {
				return *m, nil
			}
			m.Config.Model.ChatModel = &types.Model{
				Provider: m.SelectedProvider,
				ModelID:  selected.Title(),
			}
			return *m, m.saveConfig()
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return *m, cmd
}

func (m *Model) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.Config.Suggestions = suggest.DefaultConfiguration()
			return *m, m.saveConfig()
		case "n", "N":
			m.backToMenu()
			return *m, nil
		}
	}
	return *m, nil
}

func (m *Model) renderView() string {
	if m.Quitting {
		return "Goodbye!\n"
	}

	var s strings.Builder

	switch m.Screen {
	case ScreenMainMenu:
		s.WriteString(m.List.View())
		if model := m.Config.Model.ChatModel; model != nil {
			s.WriteString("\n")
			s.WriteString(ui.SubtitleStyle.Render("Chat model: " + model.String()))
		}

	case ScreenProviderSelect:
		s.WriteString(ui.TitleStyle.Render("Select Provider"))
		s.WriteString("\n\n")
		s.WriteString(m.List.View())

	case ScreenProviderConfig:
		s.WriteString(ui.TitleStyle.Render(fmt.Sprintf("Configure %s Provider", m.SelectedProvider)))
		s.WriteString("\n\n")
		m.renderInputs(&s, []string{
			"API Key (required)",
			"Base URL (optional, default: Provider Default)",
		})

	case ScreenModelProviderSelect:
		s.WriteString(ui.TitleStyle.Render("Select Provider for Chat Model"))
		s.WriteString("\n\n")
		s.WriteString(m.List.View())

	case ScreenModelSelect:
		s.WriteString(ui.TitleStyle.Render(fmt.Sprintf("Select %s Chat Model", m.SelectedProvider)))
		s.WriteString("\n\n")
		s.WriteString(m.List.View())

	case ScreenBackendConfig:
		s.WriteString(ui.TitleStyle.Render("Recommender Backend Settings"))
		s.WriteString("\n\n")
		m.renderInputs(&s, backendLabels())

	case ScreenSuggestionConfig:
		s.WriteString(ui.TitleStyle.Render("Suggestion Ranking Settings"))
		s.WriteString("\n\n")
		m.renderInputs(&s, suggestionLabels())

	case ScreenConfirmReset:
		s.WriteString(ui.WarningStyle.Render("Confirm Reset"))
		s.WriteString("\n\n")
		s.WriteString("Restore top k, distance filter and all feature weights to their defaults?\n\n")
		s.WriteString(ui.HelpStyle.Render("Press 'y' to confirm, 'n' or Esc to cancel"))
	}

	if m.StatusMsg != "" {
		s.WriteString("\n\n")
		s.WriteString(ui.SuccessStyle.Render(m.StatusMsg))
	}

	if m.Err != nil {
		s.WriteString("\n\n")
		s.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	}

	return s.String()
}

func (m *Model) renderInputs(s *strings.Builder, labels []string) {
	for i, input := range m.TextInputs {
		if i < len(labels) {
			s.WriteString(ui.InputLabelStyle.Render(labels[i]))
			s.WriteString("\n")
		}
		s.WriteString(input.View())
		s.WriteString("\n\n")
	}
	s.WriteString(ui.HelpStyle.Render("Press Enter to save, Esc to cancel, Tab/Shift+Tab to navigate"))
}
