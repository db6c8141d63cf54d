// Package app wires the prompt engine, format catalog, and collaborators
// into the one-shot generation pipeline and shared configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godraft/internal/brief"
	"github.com/hyperifyio/godraft/internal/budget"
	"github.com/hyperifyio/godraft/internal/export"
	"github.com/hyperifyio/godraft/internal/extract"
	"github.com/hyperifyio/godraft/internal/format"
	"github.com/hyperifyio/godraft/internal/llm"
	"github.com/hyperifyio/godraft/internal/prompt"
)

// App bundles the pieces needed to run a generation.
type App struct {
	cfg       Config
	Catalog   *format.Catalog
	Generator *llm.Generator
}

// New builds the app from configuration. Dry runs skip the LLM client so the
// prompt can be inspected without network access or credentials.
func New(cfg Config) (*App, error) {
	ApplyDefaults(&cfg)

	catalog := format.DefaultCatalog()
	if cfg.FormatsFile != "" {
		var err error
		catalog, err = format.LoadCatalog(cfg.FormatsFile)
		if err != nil {
			return nil, err
		}
	}

	a := &App{cfg: cfg, Catalog: catalog}
	if !cfg.DryRun {
		if cfg.LLMModel == "" {
			return nil, errors.New("llm model is required (set -llm.model or LLM_MODEL)")
		}
		a.Generator = &llm.Generator{
			Client:          llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:           cfg.LLMModel,
			MaxOutputTokens: cfg.MaxOutputTokens,
		}
	}
	return a, nil
}

// Ceiling resolves the total prompt token budget: an explicit configuration
// wins, otherwise it is derived from the model's context window, falling back
// to the engine default.
func (a *App) Ceiling() int {
	if a.cfg.MaxPromptTokens > 0 {
		return a.cfg.MaxPromptTokens
	}
	if a.cfg.LLMModel != "" {
		if c := budget.PromptCeiling(a.cfg.LLMModel, a.cfg.MaxOutputTokens); c > 0 {
			return c
		}
	}
	return prompt.DefaultCeiling
}

// Run executes the one-shot pipeline: read and parse the brief file, load
// reference materials, build the bounded prompt, call the model, and write
// the generated document (plus optional DOCX/PDF renditions).
func (a *App) Run(ctx context.Context) error {
	raw, err := os.ReadFile(a.cfg.BriefPath)
	if err != nil {
		return fmt.Errorf("read brief: %w", err)
	}
	b := brief.Parse(string(raw))
	if b.Text == "" {
		return errors.New("brief is required")
	}
	// Explicit flags beat labels inside the brief file.
	if a.cfg.FormatKey != "" {
		b.FormatKey = a.cfg.FormatKey
	}
	if a.cfg.CustomWordCount != "" {
		b.CustomWordCount = a.cfg.CustomWordCount
	}

	spec := a.Catalog.Resolve(b.FormatKey, b.CustomWordCount)
	pools := a.loadPools()
	ceiling := a.Ceiling()

	promptText := prompt.Optimize(prompt.Input{
		Brief:   b.Text,
		Format:  spec,
		Meta:    b.Meta,
		Pools:   pools,
		Ceiling: ceiling,
	})
	log.Info().
		Str("format", spec.Key).
		Int("ceiling", ceiling).
		Int("promptTokens", budget.EstimateTokens(promptText)).
		Int("pools", len(pools)).
		Msg("assembled prompt")

	if a.cfg.DryRun {
		if err := os.WriteFile(a.cfg.OutputPath, []byte(promptText), 0o644); err != nil {
			return fmt.Errorf("write dry-run output: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPath).Msg("wrote dry-run prompt")
		return nil
	}

	doc, err := a.Generator.Generate(ctx, promptText)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote generated document")

	if a.cfg.OutputDOCX != "" {
		data, err := export.DOCX(doc)
		if err != nil {
			return fmt.Errorf("render docx: %w", err)
		}
		if err := os.WriteFile(a.cfg.OutputDOCX, data, 0o644); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputDOCX).Msg("wrote DOCX rendition")
	}
	if a.cfg.OutputPDF != "" {
		f, err := os.Create(a.cfg.OutputPDF)
		if err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		err = export.PDF(doc, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDF).Msg("wrote PDF rendition")
	}
	return nil
}

// loadPools reads reference materials from the materials directory. When the
// directory has style/past/competitive subdirectories those become the
// categorised pools; otherwise the directory's files merge into a single
// materials pool.
func (a *App) loadPools() []prompt.Pool {
	dir := a.cfg.MaterialsDir
	if dir == "" {
		return nil
	}
	var pools []prompt.Pool
	categorised := false
	for _, name := range prompt.PoolOrder {
		sub := filepath.Join(dir, name)
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			continue
		}
		categorised = true
		pools = append(pools, prompt.Pool{
			Name: name,
			Text: extract.FromDir(sub, a.cfg.MaxCharsPerCategory),
		})
	}
	if categorised {
		return pools
	}
	if text := extract.FromDir(dir, a.cfg.MaxCharsPerCategory); text != "" {
		return []prompt.Pool{{Name: prompt.PoolMaterials, Text: text}}
	}
	return nil
}
