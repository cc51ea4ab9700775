package cli

// Output formatting.
const (
	// JSONIndent indents command results.
	JSONIndent = "  "
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
)
