package values

// Boolean is an inline true/false value.
type Boolean bool

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Boolean) Type() string { return "boolean" }
func (b Boolean) Truth() bool { return bool(b) }
