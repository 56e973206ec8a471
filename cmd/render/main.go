// Command render prints a stored resume record to HTML or PDF without the
// server, for checking templates locally.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	in := flag.String("in", "resume.json", "resume record JSON")
	out := flag.String("out", "", "output file (.html or .pdf); defaults to the export file name")
	tpl := flag.String("template", "", "template id overriding the record's")
	chrome := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome binary for PDF output")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read record: %v\n", err)
		os.Exit(2)
	}
	var rec domain.ResumeRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	if *tpl != "" {
		rec.Template = *tpl
	}
	rec, err = usecase.PrepareRecord(rec, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid record: %v\n", err)
		os.Exit(2)
	}

	renderer := infra.NewChromedpRenderer(*chrome)
	exporter := usecase.NewExporter(renderer, nil, nil, nil)
	snap := usecase.Snapshot{Document: rec.ResumeDocument, TemplateID: rec.Template, Order: rec.SectionOrder}

	outFile := *out
	if outFile == "" {
		outFile = usecase.ArtifactFileName(rec.PersonalInfo.FullName)
	}
	var content []byte
	if strings.EqualFold(filepath.Ext(outFile), ".html") {
		html, err := exporter.RenderExportHTML(snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render html: %v\n", err)
			os.Exit(1)
		}
		content = []byte(html)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		art, err := exporter.Export(ctx, "", snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		content = art.Content
	}
	if err := os.WriteFile(outFile, content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outFile, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outFile)
}
