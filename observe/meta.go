package observe

// OpMeta identifies an instrumented operation.
type OpMeta struct {
	Component string   // Owning component, e.g. "cache" or "cli" (optional)
	Name      string   // Operation name (required)
	Version   string   // Component version (optional)
	Tags      []string // Free-form tags (optional)
}

// SpanName returns the span name for this operation.
// Format: utilkit.<component>.<name> or utilkit.<name>
func (m OpMeta) SpanName() string {
	return "utilkit." + m.ID()
}

// ID returns <component>.<name>, or just the name without a component.
func (m OpMeta) ID() string {
	if m.Component != "" {
		return m.Component + "." + m.Name
	}
	return m.Name
}

// Validate checks that the operation is named.
func (m OpMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingOpName
	}
	return nil
}
