package app

// Config holds runtime configuration for the application, populated from
// flags, environment, and an optional config file in that precedence order.
type Config struct {
	// One-shot generation
	BriefPath    string
	OutputPath   string
	OutputDOCX   string
	OutputPDF    string
	MaterialsDir string
	FormatKey    string
	// CustomWordCount is kept as the raw string the user supplied; the
	// format catalog decides whether it is usable.
	CustomWordCount string
	FormatsFile     string

	// Server
	ListenAddr    string
	UploadDir     string
	RetentionDays int

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	// MaxPromptTokens is the total prompt ceiling; zero derives it from the
	// model context window.
	MaxPromptTokens int
	MaxOutputTokens int

	// Extraction
	MaxCharsPerCategory int

	// Mail
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Behavior
	DryRun  bool
	Verbose bool
}

// Defaults used when neither flags, env, nor file set a value.
const (
	DefaultListenAddr          = ":8080"
	DefaultUploadDir           = "uploads"
	DefaultRetentionDays       = 7
	DefaultMaxOutputTokens     = 4000
	DefaultMaxCharsPerCategory = 100_000
)

// ApplyDefaults fills remaining zero values.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if cfg.MaxCharsPerCategory == 0 {
		cfg.MaxCharsPerCategory = DefaultMaxCharsPerCategory
	}
}
