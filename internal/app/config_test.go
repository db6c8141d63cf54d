package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("FILE_RETENTION_DAYS", "3")
	t.Setenv("DRY_RUN", "true")

	cfg := Config{LLMModel: "explicit-model"}
	ApplyEnvToConfig(&cfg)

	if cfg.LLMModel != "explicit-model" {
		t.Fatal("explicit values must win over env")
	}
	if cfg.LLMBaseURL != "http://localhost:1234/v1" {
		t.Fatalf("base url = %q", cfg.LLMBaseURL)
	}
	if cfg.RetentionDays != 3 {
		t.Fatalf("retention = %d", cfg.RetentionDays)
	}
	if !cfg.DryRun {
		t.Fatal("DRY_RUN=true should enable dry run")
	}
}

func TestApplyEnvIgnoresGarbageInts(t *testing.T) {
	t.Setenv("MAX_PROMPT_TOKENS", "not-a-number")
	cfg := Config{}
	ApplyEnvToConfig(&cfg)
	if cfg.MaxPromptTokens != 0 {
		t.Fatalf("garbage int should be ignored, got %d", cfg.MaxPromptTokens)
	}
}

func TestLoadAndMergeFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "godraft.yaml")
	content := `
brief: brief.md
output: out.md
format:
  key: press-release
llm:
  model: file-model
  maxPromptTokens: 6000
uploads:
  dir: /var/uploads
  retentionDays: 14
smtp:
  host: mail.example.com
  from: drafts@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	cfg := Config{LLMModel: "flag-model"}
	MergeFileConfig(&cfg, fc)

	if cfg.LLMModel != "flag-model" {
		t.Fatal("flag value must win over file")
	}
	if cfg.BriefPath != "brief.md" || cfg.FormatKey != "press-release" {
		t.Fatalf("file values not merged: %+v", cfg)
	}
	if cfg.MaxPromptTokens != 6000 || cfg.RetentionDays != 14 {
		t.Fatalf("numeric file values not merged: %+v", cfg)
	}
	if cfg.SMTPHost != "mail.example.com" || cfg.SMTPFrom != "drafts@example.com" {
		t.Fatalf("smtp values not merged: %+v", cfg)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)
	if cfg.ListenAddr != DefaultListenAddr || cfg.RetentionDays != DefaultRetentionDays {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.MaxOutputTokens != DefaultMaxOutputTokens || cfg.MaxCharsPerCategory != DefaultMaxCharsPerCategory {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
