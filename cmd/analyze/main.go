package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/sthama121-del/ai-financial-coach/internal/config"
	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/gcs"
	"github.com/sthama121-del/ai-financial-coach/internal/ingest"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
	"github.com/sthama121-del/ai-financial-coach/internal/logger"
	"github.com/sthama121-del/ai-financial-coach/internal/report"
)

func main() {
	var (
		file   = flag.String("file", "", "document to analyze (local path or gs:// URI)")
		sample = flag.Bool("sample", false, "analyze the bundled sample dataset")
		asJSON = flag.Bool("json", false, "print the report as JSON instead of formatted text")
		noAI   = flag.Bool("no-ai", false, "skip AI narration even when a credential is configured")
	)
	flag.Parse()

	if err := run(*file, *sample, *asJSON, *noAI); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(file string, sample, asJSON, noAI bool) error {
	if file == "" && !sample {
		return fmt.Errorf("either -file or -sample is required")
	}

	cfg := config.New()
	logger.SetGlobalLevel(cfg.LogLevel)
	log := logger.New()
	ctx := logger.WithContext(context.Background(), log)

	var gen insight.Generator
	if !noAI {
		gemini, err := insight.NewGeminiGenerator(ctx, cfg)
		if err != nil {
			return err
		}
		if gemini != nil {
			gen = gemini
		}
	}
	orch := report.NewOrchestrator(cfg, gen)

	var rep *domain.Report
	if sample {
		rep = orch.AnalyzeTransactions(ctx, domain.SampleTransactions())
	} else {
		payload, filename, err := loadDocument(ctx, file)
		if err != nil {
			return err
		}
		format, err := ingest.DetectFormat(filename)
		if err != nil {
			return err
		}
		rep, err = orch.Analyze(ctx, payload, format)
		if err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	render(rep)
	return nil
}

func loadDocument(ctx context.Context, file string) (payload []byte, filename string, err error) {
	if gcs.IsURI(file) {
		payload, err = gcs.Fetch(ctx, file)
		return payload, gcs.Filename(file), err
	}
	payload, err = os.ReadFile(file)
	return payload, filepath.Base(file), err
}

var (
	heading   = color.New(color.FgCyan, color.Bold)
	agentName = color.New(color.FgYellow, color.Bold)
	warnText  = color.New(color.FgRed)
	dimText   = color.New(color.Faint)
)

func render(rep *domain.Report) {
	heading.Println("AI Financial Coach")
	dimText.Printf("report %s, generated %s\n\n", rep.ID, rep.GeneratedAt.Format("2006-01-02 15:04 MST"))

	if len(rep.Summary) > 0 {
		heading.Println("Summary")
		for _, line := range rep.Summary {
			fmt.Println("  " + line)
		}
		fmt.Println()
	}

	for _, res := range rep.Results {
		agentName.Println(displayName(res.AgentName))
		dimText.Printf("  strategy: %s\n", res.Mode)
		for _, line := range res.Narrative {
			fmt.Println("  " + line)
		}
		for _, w := range res.Warnings {
			warnText.Println("  ! " + w)
		}
		fmt.Println()
	}
}

func displayName(agent string) string {
	parts := strings.Split(agent, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
