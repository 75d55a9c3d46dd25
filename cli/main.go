package main

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/banglaphonetic/gobangla/gobangla"
	"github.com/banglaphonetic/gobangla/server"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var logger *zap.Logger

func newLogger(debug bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	if debug {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		l, err = cfg.Build()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return l
}

func fatal(msg string, err error) {
	logger.Fatal(msg, zap.Error(err))
}

func initEngine(schemeID string, schemeFile string) *gobangla.Engine {
	var (
		engine *gobangla.Engine
		err    error
	)

	if schemeFile != "" {
		engine, err = gobangla.Init(schemeFile)
	} else {
		engine, err = gobangla.InitFromID(schemeID)
	}

	if err != nil {
		fatal("couldn't load scheme", err)
	}

	engine.SetLogger(logger.Named("engine"))
	return engine
}

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debugging outputs")
	schemeFlag := flag.String("s", gobangla.DEFAULT_SCHEME_ID, "Scheme ID")
	schemeFileFlag := flag.String("f", "", "Scheme file. Overrides -s")

	nfcFlag := flag.Bool("nfc", false, "Normalize output to NFC")

	exportFlag := flag.String("export", "", "Write the active scheme to a scheme file")
	trainFlag := flag.Bool("train", false, "Train a whole word in the scheme file given with -f. 2 Arguments: Word & Bengali value")
	listFlag := flag.Bool("list", false, "List available schemes")
	serveFlag := flag.String("serve", "", "Serve HTTP on this address, eg: :8080")

	flag.Parse()

	logger = newLogger(*debugFlag)
	defer logger.Sync()

	args := flag.Args()

	if *trainFlag {
		if *schemeFileFlag == "" || len(args) != 2 {
			logger.Fatal("-train needs -f <scheme file> and 2 arguments: word and value")
		}

		sm, err := gobangla.SMInit(*schemeFileFlag)
		if err != nil {
			fatal("couldn't open scheme file", err)
		}
		defer sm.Close()
		sm.SetLogger(logger.Named("scheme-maker"))

		if err := sm.SMTrainWord(args[0], args[1]); err != nil {
			fatal("couldn't train", err)
		}

		fmt.Printf("Trained %s => %s\n", args[0], args[1])
		return
	}

	if *listFlag {
		details, err := gobangla.GetAllSchemeDetails(logger)
		if err != nil {
			fatal("couldn't list schemes", err)
		}
		for _, sd := range details {
			fmt.Printf("%s\t%s\t%s\n", sd.Identifier, sd.LangCode, sd.DisplayName)
		}
		return
	}

	engine := initEngine(*schemeFlag, *schemeFileFlag)
	defer engine.Close()

	if *exportFlag != "" {
		sm, err := gobangla.SMInit(*exportFlag)
		if err != nil {
			fatal("couldn't create scheme file", err)
		}
		defer sm.Close()
		sm.SetLogger(logger.Named("scheme-maker"))

		if err := sm.SMImportScheme(engine.Scheme()); err != nil {
			fatal("couldn't export scheme", err)
		}

		fmt.Printf("Exported %d mappings to %s\n", engine.Scheme().Len(), *exportFlag)
		return
	}

	if *serveFlag != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := server.New(engine, logger.Named("server"))
		if err := server.Serve(ctx, app, *serveFlag, logger); err != nil {
			fatal("server failed", err)
		}
		return
	}

	output := func(text string) string {
		converted := engine.Convert(text)
		if *nfcFlag {
			converted = norm.NFC.String(converted)
		}
		return converted
	}

	if len(args) > 0 {
		fmt.Println(output(strings.Join(args, " ")))
		return
	}

	// Convert stdin line by line
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for scanner.Scan() {
		writer.WriteString(output(scanner.Text()))
		writer.WriteByte('\n')
	}

	if err := scanner.Err(); err != nil {
		writer.Flush()
		fatal("couldn't read input", err)
	}
}
