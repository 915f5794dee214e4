package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"codeberg.org/snonux/cropvoice/internal/batch"
)

// ProcessSingle handles one crop/disease pair from the command line
func (p *Processor) ProcessSingle(ctx context.Context, req Request) error {
	fmt.Printf("\nProcessing: %s / %s\n", req.Crop, req.Disease)

	res, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	p.printResult(res)
	return nil
}

func (p *Processor) printResult(res *Result) {
	fmt.Printf("  Language: %s\n", res.Selection)
	if warning := res.Warning(); warning != "" {
		fmt.Printf("  Warning: %s\n", warning)
	} else if res.Translation.Translated {
		fmt.Printf("  Translated from English\n")
	}

	if p.flags.ShowText {
		fmt.Printf("\n%s\n\n", indent(res.Text(), "    "))
	}

	fmt.Printf("  Saved audio: %s (%s)\n", res.Artifact.Path, humanize.Bytes(uint64(len(res.Artifact.Bytes))))
	if res.Sweep != nil && res.Sweep.Count() > 0 {
		fmt.Printf("  Cleaned up: %s\n", res.Sweep.Summary())
	}
}

// ProcessBatch processes every request in the batch file and sweeps once
// at the end
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	processedCount := 0
	errorCount := 0
	fallbackCount := 0

	for i, entry := range entries {
		fmt.Printf("\nProcessing %d/%d: %s / %s\n", i+1, len(entries), entry.Crop, entry.Disease)

		res, err := p.run(ctx, Request{
			Crop:     entry.Crop,
			Disease:  entry.Disease,
			Language: entry.Language,
			Accent:   entry.Accent,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Error (line %d): %s\n", entry.Line, UserMessage(err))
			errorCount++
			if ctx.Err() != nil {
				break
			}
			// Continue with next entry
			continue
		}

		if res.Translation.Err != nil {
			fallbackCount++
		}
		p.printResult(res)
		processedCount++
	}

	report, swept := p.Sweep()

	// Print summary
	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total requests: %d\n", len(entries))
	fmt.Printf("Processed: %d\n", processedCount)
	if fallbackCount > 0 {
		fmt.Printf("Left untranslated: %d\n", fallbackCount)
	}
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	if swept {
		fmt.Printf("Sweep: %s\n", report.Summary())
	}
	fmt.Printf("================================\n")

	return nil
}

// ListCatalog writes the crops and their diseases
func (p *Processor) ListCatalog(w io.Writer) {
	fmt.Fprintf(w, "Catalog %s (%d records)\n", p.catalog.Source(), p.catalog.Len())
	for _, crop := range p.catalog.Crops() {
		fmt.Fprintf(w, "\n%s\n", crop)
		for _, disease := range p.catalog.Diseases(crop) {
			fmt.Fprintf(w, "  - %s\n", disease)
		}
	}
}

// ListLanguages writes the output languages and their accents
func (p *Processor) ListLanguages(w io.Writer) {
	fmt.Fprintf(w, "Output languages:\n")
	for _, l := range p.languages.Languages() {
		marker := " "
		if strings.EqualFold(l.Name, p.defaultLanguage) || strings.EqualFold(l.Code, p.defaultLanguage) {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-12s %s\n", marker, l.Name, l.Code)
		for _, a := range l.Accents {
			fmt.Fprintf(w, "      %-16s %s\n", a.Name, a.Code)
		}
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
