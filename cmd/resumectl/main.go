package main

// Render resume form JSON offline:
//   go run ./cmd/resumectl markdown --in resume.json --name "Ada Lovelace"
//   go run ./cmd/resumectl pdf --in resume.json --out ./out
//   go run ./cmd/resumectl inspect ./out/Ada_Lovelace_2026.pdf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-backend/internal/shared/util"
	"career-backend/resume/markdown"
	"career-backend/resume/model"
	"career-backend/resume/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type inputFlags struct {
	in   string
	name string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in, "in", "", "resume form JSON file (defaults to a built-in sample, - for stdin)")
	cmd.Flags().StringVar(&f.name, "name", "", "display name shown in the header")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Assemble, preview and render resumes from form JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(markdownCmd(), previewCmd(), pdfCmd(), inspectCmd())
	return root
}

func markdownCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Print the assembled markdown document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, name, err := flags.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), markdown.Assemble(doc, name))
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func previewCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the structured preview as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, name, err := flags.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			preview := markdown.BuildPreview(markdown.Parse(markdown.Assemble(doc, name)), name)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(preview)
		},
	}
	flags.bind(cmd)
	return cmd
}

func pdfCmd() *cobra.Command {
	var flags inputFlags
	var outDir string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render the resume to a PDF file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, name, err := flags.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			out, err := render.NewPDFRenderer().Render(doc, name)
			if err != nil {
				return err
			}
			fileName, err := util.SanitizeFileName(out.FileName)
			if err != nil {
				fileName = "resume.pdf"
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, fileName)
			if err := os.WriteFile(path, out.Bytes, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages)\n", path, out.Pages)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&outDir, "out", "./out", "output directory")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Print the text of each page of a rendered PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pages, err := render.ExtractPages(data)
			if err != nil {
				return err
			}
			for i, text := range pages {
				fmt.Fprintf(cmd.OutOrStdout(), "--- page %d/%d ---\n%s\n", i+1, len(pages), strings.TrimSpace(text))
			}
			return nil
		},
	}
}

func (f *inputFlags) load(stdin io.Reader) (model.ResumeDocument, string, error) {
	name := strings.TrimSpace(f.name)
	if f.in == "" {
		if name == "" {
			name = "Jordan Lee"
		}
		return sampleDocument(), name, nil
	}

	var (
		data []byte
		err  error
	)
	if f.in == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(f.in)
	}
	if err != nil {
		return model.ResumeDocument{}, "", errors.Wrap(err, "read input")
	}
	var doc model.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.ResumeDocument{}, "", errors.Wrap(err, "decode resume form")
	}
	if err := doc.Validate(); err != nil {
		return model.ResumeDocument{}, "", errors.Wrap(err, "invalid resume form")
	}
	return doc, name, nil
}

func sampleDocument() model.ResumeDocument {
	return model.ResumeDocument{
		ContactInfo: model.ContactInfo{
			Email:    "jordan.lee@example.com",
			Mobile:   "+1-555-0102",
			LinkedIn: "https://www.linkedin.com/in/jordanlee",
		},
		Summary: "Backend engineer with 8+ years of experience building resilient APIs and data services.",
		Skills:  "Go, PostgreSQL, Kafka, Kubernetes, Terraform",
		Experience: []model.Entry{
			{
				Title:        "Senior Backend Engineer",
				Organization: "Northwind Labs",
				Duration:     "2021 - Present",
				Description:  "- Led the platform migration to managed Postgres\n- Cut p99 API latency by 40%",
			},
			{
				Title:        "Backend Engineer",
				Organization: "Contoso",
				Duration:     "2017 - 2021",
				Description:  "Built billing and invoicing services.",
			},
		},
		Education: []model.Entry{
			{Title: "B.S. Computer Science", Organization: "University of Texas", Duration: "2013 - 2017"},
		},
	}
}
