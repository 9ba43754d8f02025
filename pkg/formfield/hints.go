package formfield

// Hints holds presentation options (label, help text, widget) that fields
// carry for the rendering layer without interpreting them.
type Hints map[string]any

// Well known hint keys.
const (
	HintLabel    = "label"
	HintHelpText = "help_text"
	HintWidget   = "widget"
	HintAttrs    = "attrs"
)

// Label returns the label hint, if any.
func (h Hints) Label() string { return h.str(HintLabel) }

// HelpText returns the help text hint, if any.
func (h Hints) HelpText() string { return h.str(HintHelpText) }

// Widget returns the widget name hint, if any.
func (h Hints) Widget() string { return h.str(HintWidget) }

func (h Hints) str(key string) string {
	if s, ok := h[key].(string); ok {
		return s
	}
	return ""
}

// clone returns a shallow copy so callers cannot mutate a field's hints.
func (h Hints) clone() Hints {
	if h == nil {
		return nil
	}
	out := make(Hints, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
