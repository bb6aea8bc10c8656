package set

import (
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/consts"
	"github.com/austiecodes/promptrec/internal/types"
	"github.com/austiecodes/promptrec/internal/utils"
)

func createMainMenu() list.Model {
	items := []list.Item{
		MenuItem{title: MenuItemProvider, desc: "Configure provider settings (API key, base URL)"},
		MenuItem{title: MenuItemChatModel, desc: "Choose who answers chat messages"},
		MenuItem{title: MenuItemBackend, desc: "Configure the recommender backend (URL, timeout, cache)"},
		MenuItem{title: MenuItemSuggestions, desc: "Tune suggestion ranking (top k, distance filter, weights)"},
		MenuItem{title: MenuItemReset, desc: "Restore default suggestion ranking"},
		MenuItem{title: MenuItemExit, desc: "Exit settings"},
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 60, 30)
	l.Title = "Promptrec Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	return l
}

func createProviderList(withBackend bool) list.Model {
	var items []list.Item
	if withBackend {
		items = append(items, MenuItem{title: consts.ProviderBackend, desc: "Recommender backend /chat endpoint"})
	}
	items = append(items,
		MenuItem{title: consts.ProviderOpenAI, desc: "OpenAI API (GPT models)"},
		MenuItem{title: consts.ProviderAnthropic, desc: "Anthropic API (Claude models)"},
		MenuItem{title: consts.ProviderGoogle, desc: "Google Gemini API"},
	)

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 60, 14)
	l.Title = "Select Provider"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	return l
}

func createModelList(models []string) list.Model {
	items := make([]list.Item, len(models))
	for i, modelID := range models {
		items[i] = MenuItem{title: modelID, desc: ""}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 60, 30)
	l.Title = "Select Chat Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	return l
}

func newInput(placeholder string, limit, width int, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	if value != "" {
		in.SetValue(value)
	}
	return in
}

func createProviderConfigInputs(config *utils.Config, providerID string) []textinput.Model {
	var apiKey, baseURL string
	if pc, ok := config.Providers.Get(providerID); ok {
		apiKey, baseURL = pc.APIKey, pc.BaseURL
	}

	placeholder := "Provider default"
	if providerID == consts.ProviderOpenAI {
		placeholder = consts.DefaultBaseURL
	}

	inputs := []textinput.Model{
		newInput("sk-...", 256, 50, apiKey),
		newInput(placeholder, 256, 50, baseURL),
	}
	inputs[0].EchoMode = textinput.EchoPassword
	inputs[0].EchoCharacter = '*'
	return inputs
}

func createBackendConfigInputs(config *utils.Config) []textinput.Model {
	return []textinput.Model{
		newInput(consts.DefaultBackendURL, 256, 50, config.Backend.BaseURL),
		newInput(strconv.Itoa(consts.DefaultBackendTimeout), 5, 20, strconv.Itoa(config.Backend.TimeoutSeconds)),
		newInput(strconv.Itoa(consts.DefaultCacheTTL), 5, 20, strconv.Itoa(config.Backend.CacheTTLSeconds)),
	}
}

func backendLabels() []string {
	return []string{
		"Backend URL (default: " + consts.DefaultBackendURL + ")",
		"Request Timeout Seconds (default: " + strconv.Itoa(consts.DefaultBackendTimeout) + ")",
		"Suggestion Cache TTL Seconds (negative disables, default: " + strconv.Itoa(consts.DefaultCacheTTL) + ")",
	}
}

// createSuggestionConfigInputs returns top k, distance filter, then one
// weight input per known feature in display order.
func createSuggestionConfigInputs(config *utils.Config) []textinput.Model {
	s := config.Suggestions
	inputs := []textinput.Model{
		newInput("5", 5, 20, strconv.Itoa(s.TopK)),
		newInput("0.50", 10, 20, formatFloat(s.DistanceFilter)),
	}
	for _, f := range types.KnownFeatures {
		inputs = append(inputs, newInput("0", 10, 20, formatFloat(s.Weight(f))))
	}
	return inputs
}

func suggestionLabels() []string {
	labels := []string{
		"Top K (1-100, default: 5)",
		"Distance Filter (0.0-1.0, default: 0.50)",
	}
	for _, f := range types.KnownFeatures {
		labels = append(labels, "Weight: "+ui.FeatureLabel(f))
	}
	return labels
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (m *Model) saveConfig() tea.Cmd {
	save, config := m.save, m.Config
	return func() tea.Msg {
		return ConfigSavedMsg{Err: save(config)}
	}
}

func (m *Model) loadModelsForProvider(providerID string) tea.Cmd {
	listModels, config := m.listModels, m.Config
	return func() tea.Msg {
		models, err := listModels(config, providerID)
		return ModelsLoadedMsg{Models: models, Err: err}
	}
}
