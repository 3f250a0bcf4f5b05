package domain

// AnswerModel identifies which model the remote service should use to
// generate answers. It is request configuration, not conversation
// state: switching models mid-conversation affects later queries only.
type AnswerModel string

const (
	// ModelGPT4o is the default answering model.
	ModelGPT4o AnswerModel = "gpt-4o"

	// ModelGPT4oMini trades quality for speed and cost.
	ModelGPT4oMini AnswerModel = "gpt-4o-mini"

	// ModelGemini3 is the alternative provider's model.
	ModelGemini3 AnswerModel = "gemini-3"
)

// AnswerModels returns the recognised models in display order.
func AnswerModels() []AnswerModel {
	return []AnswerModel{ModelGPT4o, ModelGPT4oMini, ModelGemini3}
}

// Valid reports whether m is one of the recognised models. The server
// rejects anything else with a client error, which surfaces as a
// failed turn.
func (m AnswerModel) Valid() bool {
	switch m {
	case ModelGPT4o, ModelGPT4oMini, ModelGemini3:
		return true
	default:
		return false
	}
}

// Next cycles to the following model in display order, wrapping at the
// end. Used by the model picker.
func (m AnswerModel) Next() AnswerModel {
	models := AnswerModels()
	for i, candidate := range models {
		if candidate == m {
			return models[(i+1)%len(models)]
		}
	}
	return models[0]
}
