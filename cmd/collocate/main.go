package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/cognicore/rhetoric/internal/feed"
	"github.com/cognicore/rhetoric/pkg/rhetoric"
	"github.com/cognicore/rhetoric/pkg/rhetoric/colloc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/config"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/memstore"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dataPath   = flag.String("data", "", "Input JSONL file (required)")
		dbPath     = flag.String("db", "", "SQLite database path (optional, in-memory if empty)")
		n          = flag.Int("n", -1, "Collocates added per synset (-1 = config bootstrap.n)")
		top        = flag.Int("top", 10, "Collocates listed per seed value")
		minSupport = flag.Int64("min-support", 2, "Minimum sentence co-occurrences for an NPMI neighbor")
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
	cfg := components.Config
	if *n < 0 {
		*n = cfg.Bootstrap.N
	}

	entries, err := feed.ReadFile(*dataPath, feed.WithLocation(components.Location))
	if err != nil {
		log.Fatal("Failed to load speeches:", err)
	}

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

	recs := make([]speech.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record
	}
	speeches, err := engine.Ingest(ctx, recs)
	if err != nil {
		log.Fatal("Failed to tokenize speeches:", err)
	}
	log.Printf("Tokenized %d speeches", len(speeches))

	attr := cfg.Attr()
	m, err := engine.Collocations(ctx, speeches, attr)
	if err != nil {
		log.Fatal("Failed to count collocations:", err)
	}

	expanded, err := engine.Expand(components.Synsets, m, attr, *n)
	if err != nil {
		log.Fatal("Failed to expand synsets:", err)
	}
	for _, s := range expanded {
		fmt.Printf("%s: %s\n", s.Name, strings.Join(s.Values, ", "))
	}

	docs, err := speech.Documents(speeches)
	if err != nil {
		log.Fatal(err)
	}
	table := colloc.NewTable[string]()
	table.AddDocuments(docs, components.Pipeline.IsWord, colloc.Strings(attr))

	for _, s := range expanded {
		fmt.Printf("\n# %s\n", s.Name)
		for _, v := range s.Values {
			cs, err := st.TopCollocates(ctx, v, *top)
			if err != nil {
				log.Fatal("Failed to query collocates:", err)
			}
			fmt.Printf("%s\tcount\t%s\n", v, formatCollocates(cs))
			fmt.Printf("%s\tnpmi\t%s\n", v, formatNeighbors(table.Neighbors(v, *top, *minSupport, colloc.DefaultScorer)))
		}
	}
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		return memstore.New(), nil
	}
	return sqlite.Open(ctx, path)
}

func formatCollocates(cs []store.Collocate) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s:%d", c.Token, c.Count)
	}
	return strings.Join(parts, " ")
}

func formatNeighbors(ns []colloc.Neighbor[string]) string {
	parts := make([]string, len(ns))
	for i, nb := range ns {
		parts[i] = fmt.Sprintf("%s:%.3f", nb.Value, nb.Score)
	}
	return strings.Join(parts, " ")
}
