// kana transliterates romaji into hiragana or katakana, either from its
// arguments or interactively.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/logger"
	"github.com/jusunglee/kana/internal/transliteration"
	"github.com/jusunglee/kana/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mainE(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error("fatal", "error", err)
		stop()
		os.Exit(1)
	}
}

func mainE(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kana")
	var (
		interactive      = fs.Bool('i', "interactive", "read romaji interactively")
		katakana         = fs.Bool('k', "katakana", "start with katakana instead of hiragana")
		extended         = fs.Bool('e', "extended-katakana", "use extended katakana for foreign sounds")
		punctuation      = fs.Bool('p', "with-punctuation", "convert punctuation to Japanese marks")
		kanaToggle       = fs.String('t', "kana-toggle", "", "character that switches between hiragana and katakana")
		rawToggle        = fs.String('r', "raw-text-toggle", "", "character that starts and ends raw text")
		resetChar        = fs.String('R', "prolongation-reset-char", "", "character that prevents a prolongation mark")
		smallVowelChar   = fs.String('s', "small-vowel-char", "", "character that makes the next vowel small")
		virtualStopChar  = fs.String('S', "virtual-stop-char", "", "character that inserts a small tsu")
		hiraProlongation = fs.BoolLong("show-hiragana-prolongation", "write doubled vowels in hiragana as ー")
		tablesDir        = fs.StringLong("tables", "", "directory with replacement syllable tables")
		databaseURL      = fs.StringLong("database-url", "", "history store URL (postgres://..., sqlite://path or a file path)")
		historyN         = fs.IntLong("history", 0, "print the last N recorded transliterations and exit")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("KANA")); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New(stderr)

	var tables *glyphs.Tables
	if *tablesDir != "" {
		var err error
		if tables, err = glyphs.Load(os.DirFS(*tablesDir)); err != nil {
			return fmt.Errorf("loading tables from %s: %w", *tablesDir, err)
		}
		log.DebugContext(ctx, "loaded tables", "dir", *tablesDir)
	}

	opts := history.Options{
		Katakana:                 *katakana,
		ExtendedKatakana:         *extended,
		Punctuation:              *punctuation,
		ShowHiraganaProlongation: *hiraProlongation,
		SpecialChars: lo.PickBy(map[string]string{
			transliteration.KanaToggle.String():        *kanaToggle,
			transliteration.RawTextToggle.String():     *rawToggle,
			transliteration.ResetProlongation.String(): *resetChar,
			transliteration.SmallVowel.String():        *smallVowelChar,
			transliteration.VirtualStop.String():       *virtualStopChar,
		}, func(_ string, char string) bool { return char != "" }),
	}
	if _, err := opts.Config(tables); err != nil {
		return err
	}

	svc := history.NewService(nil, tables, log)
	if *databaseURL != "" {
		repo, err := history.Open(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		svc = history.NewService(repo, tables, log)
	}

	switch {
	case *historyN > 0:
		return printHistory(ctx, svc, *historyN, stdout)
	case *interactive:
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return tui.Run(ctx, svc, opts, tables, stdin, stdout)
		}
		return transliterateLines(ctx, svc, opts, stdin, stdout)
	default:
		out, err := svc.Transliterate(ctx, strings.Join(fs.GetArgs(), " "), opts, history.SourceCLI)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
		return nil
	}
}

func transliterateLines(ctx context.Context, svc *history.Service, opts history.Options, stdin io.Reader, stdout io.Writer) error {
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		out, err := svc.Transliterate(ctx, scanner.Text(), opts, history.SourceInteractive)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func printHistory(ctx context.Context, svc *history.Service, n int, stdout io.Writer) error {
	entries, err := svc.Recent(ctx, int32(min(n, math.MaxInt32)))
	if err != nil {
		if errors.Is(err, history.ErrNoStore) {
			return errors.New("--history needs --database-url")
		}
		return fmt.Errorf("listing history: %w", err)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.Input, e.Output)
	}
	return nil
}
