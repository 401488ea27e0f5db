package schema

// HasRequiredFields reports whether the message type, directly or through
// message-typed fields, carries any field whose absence makes an instance
// uninitialized. Two deliberate conservative approximations are preserved
// from the ecosystem convention: a message with extension ranges is assumed
// to have required fields (an extension could carry a required-bearing
// message type), and a cycle that is still unresolved when it closes is
// assumed to contribute none (a requiredness that depends on completing the
// cycle reads as false).
func HasRequiredFields(m *Message) bool {
	return hasRequiredFields(m, make(map[*Message]bool))
}

func hasRequiredFields(m *Message, seen map[*Message]bool) bool {
	if seen[m] {
		// Either the type was already cleared, or we are mid-check somewhere
		// up the stack; in the latter case any required field will still be
		// found when control returns to that frame.
		return false
	}
	seen[m] = true

	if m.Extensible() {
		return true
	}

	for _, f := range m.Fields {
		if f.Required() || f.RequiredTag {
			return true
		}
		if f.Message != nil && hasRequiredFields(f.Message, seen) {
			return true
		}
	}

	return false
}
