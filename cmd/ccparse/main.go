package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rmuktader/ccparse/internal/export"
	"github.com/rmuktader/ccparse/internal/logger"
	"github.com/rmuktader/ccparse/internal/parser"
	"github.com/rmuktader/ccparse/internal/statement"
)

const version = "1.0.0"

func main() {
	log := logger.New().With().Str("run_id", uuid.NewString()).Logger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "export":
		runExport(log)
	case "version":
		fmt.Printf("ccparse %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ccparse - credit-card statement PDF parser")
	fmt.Println("\nUsage:")
	fmt.Println("  ccparse <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a statement PDF and print a summary")
	fmt.Println("  export    Parse a statement PDF and write the transaction table")
	fmt.Println("  version   Show the version")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'ccparse <command> -h' for more information on a command.")
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	pdfPath := fs.String("pdf", "", "Path to the statement PDF")
	fs.Parse(os.Args[2:])

	if *pdfPath == "" {
		log.Fatal().Msg("Error: --pdf is required")
	}

	st := parseStatement(log, *pdfPath)

	fmt.Printf("Entity:          %s\n", st.EntityName)
	fmt.Printf("Cardholder:      %s\n", st.PrimaryCardholder)
	fmt.Printf("Account ending:  %s\n", st.AccountSuffix)
	fmt.Printf("Billing period:  %s - %s\n", st.BillingStart, st.BillingEnd)
	fmt.Printf("Previous:        %s\n", st.Balance.PreviousBalance)
	fmt.Printf("Purchases:       %s\n", st.Balance.Purchases)
	fmt.Printf("Credits:         %s\n", st.Balance.Credits)
	fmt.Printf("Fees:            %s\n", st.Balance.Fees)
	fmt.Printf("Interest:        %s\n", st.Balance.Interest)
	fmt.Printf("New balance:     %s\n", st.Balance.NewBalance)
	fmt.Printf("Min payment:     %s\n", st.Balance.MinimumPayment)
	fmt.Printf("Points:          %d\n", st.CurrentPoints)
	fmt.Printf("\nTransactions (%d):\n", len(st.Transactions))
	for _, t := range st.Transactions {
		fmt.Printf("  %s  %s  %-10s %10s  %s\n",
			t.ActivityDate, t.PostDate, t.ReferenceNumber, t.Amount, t.Description)
	}
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	pdfPath := fs.String("pdf", "", "Path to the statement PDF")
	outPath := fs.String("out", "", "Output file (.csv or .xlsx)")
	format := fs.String("format", "", "Output format: csv or xlsx (default: from --out extension)")
	fs.Parse(os.Args[2:])

	if *pdfPath == "" || *outPath == "" {
		log.Fatal().Msg("Error: --pdf and --out are required")
	}

	outFormat := *format
	if outFormat == "" {
		outFormat = strings.TrimPrefix(filepath.Ext(*outPath), ".")
	}

	st := parseStatement(log, *pdfPath)

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create output file")
	}
	defer out.Close()

	switch outFormat {
	case "csv":
		err = export.WriteCSV(st, out)
	case "xlsx":
		err = export.WriteXLSX(st, out)
	default:
		log.Fatal().Str("format", outFormat).Msg("Unsupported output format")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	log.Info().Str("out", *outPath).Int("transactions", len(st.Transactions)).Msg("Export completed")
}

func parseStatement(log zerolog.Logger, pdfPath string) *statement.Statement {
	started := time.Now()
	log.Info().Str("pdf", pdfPath).Msg("Parsing statement")

	st, err := parser.NewWithLogger(log).Parse(pdfPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Parse failed")
	}

	log.Info().
		Dur("elapsed", time.Since(started)).
		Int("transactions", len(st.Transactions)).
		Msg("Parse completed")
	return st
}
