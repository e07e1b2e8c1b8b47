package router

const (
	DefaultQuickModel    = "google/gemini-pro-1.5"
	DefaultDetailedModel = "deepseek/deepseek-r1"
)

// ModelRouter picks the upstream model for a response mode.
type ModelRouter struct {
	quickModel    string
	detailedModel string
}

func NewModelRouter(quickModel, detailedModel string) *ModelRouter {
	if quickModel == "" {
		quickModel = DefaultQuickModel
	}
	if detailedModel == "" {
		detailedModel = DefaultDetailedModel
	}
	return &ModelRouter{
		quickModel:    quickModel,
		detailedModel: detailedModel,
	}
}

// Route returns the model id for mode; unknown modes get the detailed model.
func (r *ModelRouter) Route(mode Mode) string {
	if mode == ModeQuick {
		return r.quickModel
	}
	return r.detailedModel
}
