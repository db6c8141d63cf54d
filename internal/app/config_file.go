package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	Brief        string `yaml:"brief"`
	Output       string `yaml:"output"`
	OutputDOCX   string `yaml:"outputDOCX"`
	OutputPDF    string `yaml:"outputPDF"`
	MaterialsDir string `yaml:"materials"`

	Format struct {
		Key             string `yaml:"key"`
		CustomWordCount string `yaml:"customWordCount"`
		CatalogFile     string `yaml:"catalogFile"`
	} `yaml:"format"`

	Listen string `yaml:"listen"`

	Uploads struct {
		Dir                 string `yaml:"dir"`
		RetentionDays       int    `yaml:"retentionDays"`
		MaxCharsPerCategory int    `yaml:"maxCharsPerCategory"`
	} `yaml:"uploads"`

	LLM struct {
		BaseURL         string `yaml:"base"`
		Model           string `yaml:"model"`
		APIKey          string `yaml:"key"`
		MaxPromptTokens int    `yaml:"maxPromptTokens"`
		MaxOutputTokens int    `yaml:"maxOutputTokens"`
	} `yaml:"llm"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`

	DryRun  bool `yaml:"dryRun"`
	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// MergeFileConfig fills unset cfg fields from fc. Flags and env win.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if *dst == 0 && v > 0 {
			*dst = v
		}
	}

	setString(&cfg.BriefPath, fc.Brief)
	setString(&cfg.OutputPath, fc.Output)
	setString(&cfg.OutputDOCX, fc.OutputDOCX)
	setString(&cfg.OutputPDF, fc.OutputPDF)
	setString(&cfg.MaterialsDir, fc.MaterialsDir)
	setString(&cfg.FormatKey, fc.Format.Key)
	setString(&cfg.CustomWordCount, fc.Format.CustomWordCount)
	setString(&cfg.FormatsFile, fc.Format.CatalogFile)

	setString(&cfg.ListenAddr, fc.Listen)
	setString(&cfg.UploadDir, fc.Uploads.Dir)
	setInt(&cfg.RetentionDays, fc.Uploads.RetentionDays)
	setInt(&cfg.MaxCharsPerCategory, fc.Uploads.MaxCharsPerCategory)

	setString(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setInt(&cfg.MaxPromptTokens, fc.LLM.MaxPromptTokens)
	setInt(&cfg.MaxOutputTokens, fc.LLM.MaxOutputTokens)

	setString(&cfg.SMTPHost, fc.SMTP.Host)
	setInt(&cfg.SMTPPort, fc.SMTP.Port)
	setString(&cfg.SMTPUser, fc.SMTP.Username)
	setString(&cfg.SMTPPass, fc.SMTP.Password)
	setString(&cfg.SMTPFrom, fc.SMTP.From)

	cfg.DryRun = cfg.DryRun || fc.DryRun
	cfg.Verbose = cfg.Verbose || fc.Verbose
}
