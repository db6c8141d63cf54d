package app

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	setInt := func(dst *int, key string) {
		if *dst != 0 {
			return
		}
		if s := strings.TrimSpace(os.Getenv(key)); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				*dst = n
			}
		}
	}

	setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setString(&cfg.LLMModel, "LLM_MODEL")
	setString(&cfg.LLMAPIKey, "LLM_API_KEY")
	setInt(&cfg.MaxPromptTokens, "MAX_PROMPT_TOKENS")
	setInt(&cfg.MaxOutputTokens, "MAX_OUTPUT_TOKENS")

	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setInt(&cfg.RetentionDays, "FILE_RETENTION_DAYS")
	setInt(&cfg.MaxCharsPerCategory, "MAX_CHARS_PER_CATEGORY")
	setString(&cfg.FormatsFile, "FORMATS_FILE")

	setString(&cfg.SMTPHost, "SMTP_HOST")
	setInt(&cfg.SMTPPort, "SMTP_PORT")
	setString(&cfg.SMTPUser, "SMTP_USER")
	setString(&cfg.SMTPPass, "SMTP_PASSWORD")
	setString(&cfg.SMTPFrom, "SMTP_FROM")

	setBool := func(dst *bool, key string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
}
