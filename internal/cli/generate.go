package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ericfitz/tmi-report/fonts"
	"github.com/ericfitz/tmi-report/model"
	"github.com/ericfitz/tmi-report/report"
)

func newGenerateCmd() *cobra.Command {
	var (
		inputPath  string
		outputDir  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a threat-model JSON export to a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), inputPath, outputDir, configPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "threat-model JSON export to render")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory the PDF is written to")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML report configuration")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(ctx context.Context, inputPath, outputDir, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	tm, err := model.Decode(f)
	if err != nil {
		return fmt.Errorf("decode threat model %s: %w", inputPath, err)
	}

	opts := report.Options{
		PageSize:   cfg.PageSize,
		MarginSize: cfg.MarginSize,
		Language:   cfg.Language,
		Logger:     newAdapter(logger),
		Branding: report.Branding{
			DataClassification:     cfg.DataClassification,
			ConfidentialityWarning: cfg.ConfidentialityWarning,
		},
	}
	if cfg.FontsDir != "" {
		opts.Fonts = fonts.DirSource(os.DirFS(cfg.FontsDir))
	}
	if cfg.LogoFile != "" {
		logo, err := os.ReadFile(cfg.LogoFile)
		if err != nil {
			logger.Warn("logo file unreadable", "file", cfg.LogoFile, "error", err)
		} else {
			opts.Branding.LogoPNG = logo
		}
	}

	var buf bytes.Buffer
	if err := report.Generate(ctx, tm, opts, &buf); err != nil {
		return err
	}

	outPath := filepath.Join(outputDir, report.Filename(tm.Name))
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Info("report written", "file", outPath, "bytes", buf.Len())
	return nil
}
