package gemini

// Model names a generative model as it appears in the request path.
// The constants cover the well-known identifiers; any other string is
// passed through unchanged, so unlisted models can be used directly.
type Model string

const (
	ModelGemini10Pro   Model = "models/gemini-1.0-pro"
	ModelGemini15Pro   Model = "models/gemini-1.5-pro"
	ModelGemini15Flash Model = "models/gemini-1.5-flash"
)

// ParseModel maps a string to a catalog constant where one matches and
// returns the string unchanged otherwise. It accepts both the bare model
// id and the "models/" prefixed form.
func ParseModel(s string) Model {
	switch s {
	case "gemini-1.0-pro", string(ModelGemini10Pro):
		return ModelGemini10Pro
	case "gemini-1.5-pro", string(ModelGemini15Pro):
		return ModelGemini15Pro
	case "gemini-1.5-flash", string(ModelGemini15Flash):
		return ModelGemini15Flash
	}
	return Model(s)
}

func (m Model) String() string { return string(m) }
