package colors

// Default returns the default color scheme (blue theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#5F87D7",

		// Task statuses
		Pending:    "#FFD700",
		InProgress: "#00AFFF",
		Completed:  "#5FD75F",

		// Intervention reviews
		Approved: "#5FD75F",
		Refused:  "#FF5F5F",

		// UI elements
		PanelBorder:    "#585858",
		SelectedBorder: "#D75FD7",
		SelectedBg:     "#3A3A3A",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Errors
		ErrorFg: "#FF0000",
		ErrorBg: "#5F0000",

		// Status bar
		StatusBarBg:   "#5F87D7",
		StatusBarText: "#D0D0D0",
	}
}
