package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cognicore/rhetoric/internal/feed"
	"github.com/cognicore/rhetoric/pkg/rhetoric"
	"github.com/cognicore/rhetoric/pkg/rhetoric/compare"
	"github.com/cognicore/rhetoric/pkg/rhetoric/config"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/freq"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/memstore"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/sqlite"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dataPath   = flag.String("data", "", "Input JSONL file (required)")
		dbPath     = flag.String("db", "", "SQLite database path (optional, in-memory if empty)")
		author     = flag.String("author", "", "Warn when a speech is not by this author")
		words      = flag.Bool("words", false, "Count with the regex word splitter instead of the tokenizer")
		legacy     = flag.Bool("legacy", false, "Emit synset_count/total_count/synset_proportion field names")
		matrixPath = flag.String("matrix", "", "Write a speech-by-speech cosine similarity matrix to this TSV file")
		workers    = flag.Int("workers", 0, "Parallel tokenization workers (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	ctx := context.Background()

	loader := config.Loader{ConfigPath: *configPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if len(components.Synsets) == 0 {
		log.Fatal("no synsets configured")
	}

	entries, err := feed.ReadFile(*dataPath,
		feed.WithLocation(components.Location),
		feed.WithExpectedAuthor(*author),
	)
	if err != nil {
		log.Fatal("Failed to load speeches:", err)
	}
	log.Printf("Loaded %d speeches from %s", len(entries), *dataPath)

	st, err := openStore(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	engine := rhetoric.New(rhetoric.Options{
		Store:    st,
		Pipeline: components.Pipeline,
		Workers:  *workers,
	})
	defer engine.Close()

	var (
		speeches []*speech.Speech
		records  []synset.Record
	)
	if *words {
		// the regex path never tokenizes, so skip Ingest
		speeches = feed.Speeches(entries, components.Pipeline)
		for _, s := range speeches {
			if err := st.UpsertSpeech(ctx, store.FromSpeech(s)); err != nil {
				log.Fatal("Failed to store speech:", err)
			}
		}
		groups, err := components.Groups(speeches)
		if err != nil {
			log.Fatal("Failed to build groups:", err)
		}
		records, err = synset.AllWordStats(groups, components.Synsets, components.Stopwords)
		if err != nil {
			log.Fatal("Failed to compute statistics:", err)
		}
		if err := st.PutSynsetRecords(ctx, records); err != nil {
			log.Fatal("Failed to store statistics:", err)
		}
	} else {
		recs := make([]speech.Record, len(entries))
		for i, e := range entries {
			recs[i] = e.Record
		}
		speeches, err = engine.Ingest(ctx, recs)
		if err != nil {
			log.Fatal("Failed to tokenize speeches:", err)
		}
		groups, err := components.Groups(speeches)
		if err != nil {
			log.Fatal("Failed to build groups:", err)
		}
		records, err = engine.SynsetStats(ctx, groups, components.Synsets)
		if err != nil {
			log.Fatal("Failed to compute statistics:", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	for _, r := range records {
		var v any = r
		if *legacy {
			v = r.Legacy()
		}
		if err := enc.Encode(v); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("Wrote %d records", len(records))

	if *matrixPath != "" {
		if err := writeMatrix(*matrixPath, speeches, components.Config.Attr()); err != nil {
			log.Fatal("Failed to write matrix:", err)
		}
	}
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		return memstore.New(), nil
	}
	return sqlite.Open(ctx, path)
}

func writeMatrix(path string, speeches []*speech.Speech, attr doc.Attribute) error {
	counts := make([]freq.Counter[string], len(speeches))
	for i, s := range speeches {
		c, err := s.CountWordsBy(attr)
		if err != nil {
			return err
		}
		counts[i] = c
	}
	labels := compare.InauguralLabels(speeches)
	idx := make([]int, len(speeches))
	for i := range idx {
		idx[i] = i
	}
	res := compare.Matrix(idx,
		func(a, b int) float64 { return compare.Cosine(counts[a], counts[b]) },
		func(i int) string { return labels[i] },
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.WriteTSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
