package config

import (
	"fmt"
	"time"

	"github.com/cognicore/rhetoric/internal/feed"
	"github.com/cognicore/rhetoric/pkg/rhetoric/classify"
	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/normalize"
	"github.com/cognicore/rhetoric/pkg/rhetoric/prosetok"
	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
	"github.com/cognicore/rhetoric/pkg/rhetoric/stoplist"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

// Loader builds the components of a run from a config file
type Loader struct {
	// ConfigPath may be empty to run on defaults.
	ConfigPath string
	// Tokenizer replaces the prose tokenizer when set.
	Tokenizer doc.Tokenizer
}

// Components holds everything a command needs
type Components struct {
	Config     *Config
	Stopwords  *stoplist.Set
	Classifier *classify.Classifier
	Pipeline   *speech.Pipeline
	Synsets    []synset.Synset
	Location   *time.Location
}

// Load reads the config and constructs the components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		var err error
		if cfg, err = Load(l.ConfigPath); err != nil {
			return nil, err
		}
	}
	comp := &Components{Config: cfg, Location: feed.DefaultLocation()}

	base := stoplist.English()
	if cfg.Stoplist != "" {
		var err error
		if base, err = LoadStoplist(cfg.Path(cfg.Stoplist)); err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	}
	comp.Stopwords = stoplist.Standard(base)

	var opts []classify.Option
	if len(cfg.SingleLetters) > 0 {
		opts = append(opts, classify.WithSingleLetters(cfg.SingleLetters...))
	}
	comp.Classifier = classify.New(comp.Stopwords, opts...)

	tok := l.Tokenizer
	if tok == nil {
		popts := []prosetok.Option{prosetok.WithStopwords(comp.Stopwords)}
		if cfg.Segment != nil && !*cfg.Segment {
			popts = append(popts, prosetok.WithoutSegmentation())
		}
		pt, err := prosetok.New(popts...)
		if err != nil {
			return nil, fmt.Errorf("load tokenizer: %w", err)
		}
		tok = pt
	}
	comp.Pipeline = &speech.Pipeline{Tokenizer: tok, Classifier: comp.Classifier}
	if cfg.Normalize {
		comp.Pipeline.Prepare = normalize.Normalize
	}

	comp.Synsets = cfg.Synsets
	if cfg.SynsetsPath != "" {
		loaded, err := LoadSynsets(cfg.Path(cfg.SynsetsPath))
		if err != nil {
			return nil, fmt.Errorf("load synsets: %w", err)
		}
		comp.Synsets = append(comp.Synsets, loaded...)
		if err := validateSynsets(comp.Synsets); err != nil {
			return nil, err
		}
	}
	return comp, nil
}

// Groups builds the configured groups, or one group per author when none
// are configured
func (c *Components) Groups(speeches []*speech.Speech) ([]*speech.Group, error) {
	if len(c.Config.Groups) == 0 {
		return ByAuthor(speeches), nil
	}
	out := make([]*speech.Group, 0, len(c.Config.Groups))
	for _, g := range c.Config.Groups {
		built, err := g.Build(speeches, c.Location)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}
