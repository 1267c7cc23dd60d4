package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Filters
	FocusSearch        string `yaml:"focus_search"`
	CycleStatus        string `yaml:"cycle_status"`
	CycleProject       string `yaml:"cycle_project"`
	CycleTimeRange     string `yaml:"cycle_time_range"`
	CycleIntervention  string `yaml:"cycle_intervention"`
	ToggleWindow       string `yaml:"toggle_window"`
	ClearFilters       string `yaml:"clear_filters"`

	// Table navigation
	PrevRow  string `yaml:"prev_row"`
	NextRow  string `yaml:"next_row"`
	PrevPane string `yaml:"prev_pane"`
	NextPane string `yaml:"next_pane"`

	// Actions
	Refresh    string `yaml:"refresh"`
	ExportJSON string `yaml:"export_json"`
	ExportCSV  string `yaml:"export_csv"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		FocusSearch:       "/",
		CycleStatus:       "s",
		CycleProject:      "p",
		CycleTimeRange:    "t",
		CycleIntervention: "i",
		ToggleWindow:      "w",
		ClearFilters:      "c",

		PrevRow:  "k",
		NextRow:  "j",
		PrevPane: "h",
		NextPane: "l",

		Refresh:    "r",
		ExportJSON: "e",
		ExportCSV:  "E",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key bindings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.FocusSearch == "" {
		k.FocusSearch = defaults.FocusSearch
	}
	if k.CycleStatus == "" {
		k.CycleStatus = defaults.CycleStatus
	}
	if k.CycleProject == "" {
		k.CycleProject = defaults.CycleProject
	}
	if k.CycleTimeRange == "" {
		k.CycleTimeRange = defaults.CycleTimeRange
	}
	if k.CycleIntervention == "" {
		k.CycleIntervention = defaults.CycleIntervention
	}
	if k.ToggleWindow == "" {
		k.ToggleWindow = defaults.ToggleWindow
	}
	if k.ClearFilters == "" {
		k.ClearFilters = defaults.ClearFilters
	}
	if k.PrevRow == "" {
		k.PrevRow = defaults.PrevRow
	}
	if k.NextRow == "" {
		k.NextRow = defaults.NextRow
	}
	if k.PrevPane == "" {
		k.PrevPane = defaults.PrevPane
	}
	if k.NextPane == "" {
		k.NextPane = defaults.NextPane
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ExportJSON == "" {
		k.ExportJSON = defaults.ExportJSON
	}
	if k.ExportCSV == "" {
		k.ExportCSV = defaults.ExportCSV
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
