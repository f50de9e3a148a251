package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	BatchFile string
	LogLevel  string

	// Pipeline flags
	Strip           bool
	Normalize       bool
	SpeechSynthesis bool
	Decompose       bool

	// History flags
	Record   bool
	Database string
	Archive  bool
	History  int

	// Lookup flags
	Lookup         bool
	LookupProvider string
	LookupModel    string
	LookupLanguage string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:       "warn",
		Strip:          true,
		LookupProvider: "openai",
		LookupLanguage: "English",
	}
}
