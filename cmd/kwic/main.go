package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/cognicore/rhetoric/internal/feed"
	"github.com/cognicore/rhetoric/pkg/rhetoric/config"
	"github.com/cognicore/rhetoric/pkg/rhetoric/kwic"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dataPath   = flag.String("data", "", "Input JSONL file (required)")
		pattern    = flag.String("pattern", "", "Regular expression to locate (required)")
		ignoreCase = flag.Bool("i", false, "Match case-insensitively")
		pre        = flag.Int("pre", -1, "Tokens before each match (-1 = config window)")
		post       = flag.Int("post", -1, "Tokens after each match (-1 = config window)")
		overlap    = flag.Bool("overlapping", false, "Also report matches that begin inside an earlier match")
		verbose    = flag.Bool("v", false, "Log matches that do not start on a token")
		workers    = flag.Int("workers", 0, "Parallel tokenization workers (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}
	if *pattern == "" {
		log.Fatal("--pattern required")
	}
	if *ignoreCase {
		*pattern = "(?i)" + *pattern
	}
	re, err := regexp.Compile(*pattern)
	if err != nil {
		log.Fatal("Invalid pattern:", err)
	}

	loader := config.Loader{ConfigPath: *configPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *pre < 0 {
		*pre = components.Config.Window.Preceding
	}
	if *post < 0 {
		*post = components.Config.Window.Subsequent
	}

	var opts []kwic.Option
	if *overlap {
		opts = append(opts, kwic.Overlapping())
	}
	if *verbose {
		opts = append(opts, kwic.WithLogger(log.Default()))
	}
	loc, err := kwic.New(components.Pipeline.Tokenizer, opts...)
	if err != nil {
		log.Fatal(err)
	}

	entries, err := feed.ReadFile(*dataPath, feed.WithLocation(components.Location))
	if err != nil {
		log.Fatal("Failed to load speeches:", err)
	}
	speeches := feed.Speeches(entries, components.Pipeline)
	if err := speech.Parallel(context.Background(), speeches, *workers); err != nil {
		log.Fatal("Failed to tokenize speeches:", err)
	}

	total, skipped := 0, 0
	for _, s := range speeches {
		d, err := s.Document()
		if err != nil {
			log.Fatal(err)
		}
		windows, diags, err := loc.Spans(d, re, *pre, *post)
		if err != nil {
			log.Fatalf("%s: %v", s.Title, err)
		}
		for _, w := range windows {
			parts := w.Render(d)
			fmt.Printf("%s\t%d\t%s [%s] %s\n", s.Title, s.Timestamp.Year(),
				oneLine(parts[0]), oneLine(parts[1]), oneLine(parts[2]))
		}
		total += len(windows)
		skipped += len(diags)
	}
	log.Printf("%d matches, %d skipped off token boundaries", total, skipped)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
