// Command docx2everything converts a .docx file to plain text or Markdown on
// the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sudipnext/docx2everything/config"
	"github.com/sudipnext/docx2everything/converter"
)

func main() {
	_ = godotenv.Load()

	markdown := flag.Bool("markdown", false, "emit Markdown instead of plain text")
	imageDir := flag.String("images", "", "directory to extract embedded images into")
	ocr := flag.Bool("ocr", false, "run OCR over extracted images (requires tesseract)")
	outPath := flag.String("out", "", "write output to this file instead of stdout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file.docx\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	format := converter.FormatText
	if *markdown {
		format = converter.FormatMarkdown
	}

	opts := converter.Options{EnableOCR: *ocr}
	if *imageDir != "" {
		if err := os.MkdirAll(*imageDir, 0o755); err != nil {
			logger.Error("create image dir", "dir", *imageDir, "error", err)
			os.Exit(1)
		}
		opts.ImageDir = *imageDir
	}

	conv := converter.New(cfg, logger)
	res, err := conv.ConvertFile(context.Background(), flag.Arg(0), format, opts)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(res.Output+"\n"), 0o644); err != nil {
			logger.Error("write output", "path", *outPath, "error", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(res.Output)
}
