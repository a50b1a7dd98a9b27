package tools

// Result is a tool outcome in both human-readable and structured form.
// Text is shown to the workflow author; Data is passed downstream to
// subsequent workflow nodes.
type Result struct {
	Text string         `json:"text"`
	Data map[string]any `json:"data"`
}
