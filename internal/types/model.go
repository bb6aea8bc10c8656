package types

// Model identifies a chat model on a specific provider.
type Model struct {
	Provider string `json:"provider"`
	ModelID  string `json:"model_id"`
}

func (m Model) String() string {
	if m.ModelID == "" {
		return m.Provider
	}
	return m.Provider + "/" + m.ModelID
}
