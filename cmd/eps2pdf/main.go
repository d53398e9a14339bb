// Command eps2pdf renders an EPS/PostScript file to a PDF by interpreting
// its Level-1-like program against a vector graphics backend.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"eps2pdf/internal/backend/pdfsurface"
	"eps2pdf/internal/graphics"
	"eps2pdf/internal/interp"
	"eps2pdf/internal/scanner"
)

// defaultOutputFile is where a no-file interactive session writes its page.
const defaultOutputFile = "./test.pdf"

func main() {
	log.SetFlags(0)
	fmt.Println("eps2pdf - EPS to PDF converter")

	args := os.Args[1:]
	if len(args) < 1 {
		if err := convertInteractive(defaultOutputFile); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nSuccess (%s)\n", defaultOutputFile)
		return
	}

	var outArg string
	if len(args) > 1 {
		outArg = args[1]
	}

	outPath, err := outputPath(args[0], outArg)
	if err != nil {
		log.Fatal(err)
	}

	if err := convert(args[0], outPath); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nSuccess (%s)\n", outPath)
}

// outputPath derives the PDF path: an explicit output path must end in
// .pdf, otherwise the input name's extension is replaced with .pdf.
func outputPath(input, explicit string) (string, error) {
	if explicit != "" {
		if !strings.EqualFold(filepath.Ext(explicit), ".pdf") {
			return "", fmt.Errorf("unknown or unsupported output file type; output file extension must be '.pdf'")
		}
		return explicit, nil
	}
	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".pdf", nil
	}
	return strings.TrimSuffix(input, ext) + ".pdf", nil
}

func convert(inputPath, outputFile string) error {
	sc, width, height, err := scanner.LoadFile(inputPath)
	if err != nil {
		return err
	}

	bk, err := pdfsurface.New(outputFile, width, height)
	if err != nil {
		return fmt.Errorf("unable to initialize the graphics output: %w", err)
	}

	gs := graphics.New(bk, width, height)
	ip := interp.New(gs)
	ip.SetScanner(sc)

	if err := runLoop(ip, sc, false); err != nil {
		return err
	}

	return gs.WriteTo(outputFile)
}

// convertInteractive drives a REPL-style session off stdin when no input
// file is given, at the default US Letter page size.
func convertInteractive(outputFile string) error {
	bk, err := pdfsurface.New(outputFile, scanner.DefaultWidth, scanner.DefaultHeight)
	if err != nil {
		return fmt.Errorf("unable to initialize the graphics output: %w", err)
	}

	gs := graphics.New(bk, scanner.DefaultWidth, scanner.DefaultHeight)
	ip := interp.New(gs)
	sc := scanner.NewInteractive(os.Stdin)
	ip.SetScanner(sc)

	if err := runLoop(ip, sc, true); err != nil {
		return err
	}

	return gs.WriteTo(outputFile)
}

// runLoop drives the scan/interpret cycle: an interactive session prompts
// before each token, prints an error and keeps going, a batch run stops at
// the first one.
func runLoop(ip *interp.Interp, sc *scanner.Scanner, interactive bool) error {
	ip.SetInteractive(interactive)
	for {
		if interactive {
			fmt.Print("PS> ")
		}
		tok, err := sc.NextToken()
		if err != nil {
			if sc.IsEOF() {
				return nil
			}
			if interactive {
				fmt.Fprintln(os.Stderr, err)
				sc.ClearInput()
				continue
			}
			return err
		}
		if perr := ip.ProcessToken(tok); perr != nil {
			if interactive {
				fmt.Fprintln(os.Stderr, perr)
				sc.ClearInput()
				continue
			}
			return perr
		}
		if ip.Quit() {
			return nil
		}
	}
}
