package url

// JSONSchema returns the JSON-schema fragment describing the string inputs
// accepted under the constraint set. The same shape serves both validation
// and serialization: canonical forms always re-validate.
func (cs Constraints) JSONSchema() map[string]any {
	maxLen := DefaultMaxLength
	if cs.MaxLength != nil {
		maxLen = *cs.MaxLength
	}
	return map[string]any{
		"type":      "string",
		"format":    "uri",
		"minLength": 1,
		"maxLength": maxLen,
	}
}

// JSONSchema returns the JSON-schema fragment for the profile's inputs.
// See [Constraints.JSONSchema].
func (k Kind) JSONSchema() map[string]any {
	return k.Constraints().JSONSchema()
}
