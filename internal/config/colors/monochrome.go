package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Pending:    "#BCBCBC",
		InProgress: "#EEEEEE",
		Completed:  "#FFFFFF",

		Approved: "#FFFFFF",
		Refused:  "#808080",

		PanelBorder:    "#585858",
		SelectedBorder: "#FFFFFF",
		SelectedBg:     "#3A3A3A",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		ErrorFg: "#FFFFFF",
		ErrorBg: "#000000",

		StatusBarBg:   "#3A3A3A",
		StatusBarText: "#EEEEEE",
	}
}
