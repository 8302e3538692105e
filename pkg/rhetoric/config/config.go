package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/rhetoric/pkg/rhetoric/doc"
	"github.com/cognicore/rhetoric/pkg/rhetoric/stoplist"
	"github.com/cognicore/rhetoric/pkg/rhetoric/synset"
)

// Window is the context size around a match, in tokens
type Window struct {
	Preceding  int `yaml:"preceding"`
	Subsequent int `yaml:"subsequent"`
}

// Bootstrap configures synset expansion
type Bootstrap struct {
	N int `yaml:"n"`
}

// Config is the top-level configuration file
type Config struct {
	// Stoplist is a path to a YAML or plain-text word list, relative to
	// the config file. Empty means the bundled English list.
	Stoplist      string          `yaml:"stoplist"`
	SynsetsPath   string          `yaml:"synsets_file"`
	Synsets       []synset.Synset `yaml:"synsets"`
	Groups        []Group         `yaml:"groups"`
	Attribute     string          `yaml:"attribute"`
	SingleLetters []string        `yaml:"single_letters"`
	Normalize     bool            `yaml:"normalize"`
	Segment       *bool           `yaml:"segment"`
	Window        Window          `yaml:"window"`
	Bootstrap     Bootstrap       `yaml:"bootstrap"`

	dir string
}

// Default returns the settings used for anything a file leaves out
func Default() *Config {
	return &Config{
		Attribute: "lower",
		Window:    Window{Preceding: 5, Subsequent: 5},
		Bootstrap: Bootstrap{N: 10},
	}
}

// Load reads the config at path over Default and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	cfg.Synsets = cleanSynsets(cfg.Synsets)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	if _, err := doc.ParseAttribute(c.Attribute); err != nil {
		return err
	}
	if c.Window.Preceding < 0 || c.Window.Subsequent < 0 {
		return fmt.Errorf("negative window (%d, %d)", c.Window.Preceding, c.Window.Subsequent)
	}
	if err := validateSynsets(c.Synsets); err != nil {
		return err
	}
	seen := map[string]bool{}
	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d has no name", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate group %q", g.Name)
		}
		seen[g.Name] = true
	}
	return nil
}

// Attr returns the configured attribute
func (c *Config) Attr() doc.Attribute {
	a, err := doc.ParseAttribute(c.Attribute)
	if err != nil {
		return doc.Lower
	}
	return a
}

// Path resolves p relative to the config file
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// cleanSynsets lowercases and trims values and drops duplicates
func cleanSynsets(in []synset.Synset) []synset.Synset {
	out := make([]synset.Synset, len(in))
	for i, s := range in {
		values := make([]string, 0, len(s.Values))
		for _, v := range s.Values {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				values = append(values, v)
			}
		}
		out[i] = synset.New(s.Name, values...)
	}
	return out
}

func validateSynsets(synsets []synset.Synset) error {
	seen := map[string]bool{}
	for i, s := range synsets {
		if s.Name == "" {
			return fmt.Errorf("synset %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate synset %q", s.Name)
		}
		if len(s.Values) == 0 {
			return fmt.Errorf("synset %q has no values", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// LoadStoplist reads a stopword list. Files ending in .yaml or .yml hold a
// "terms" list; anything else is one word per line
func LoadStoplist(path string) (*stoplist.Set, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var sl struct {
			Terms []string `yaml:"terms"`
		}
		if err := yaml.Unmarshal(data, &sl); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return stoplist.New(sl.Terms...), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := stoplist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return stoplist.New(words...), nil
}

// LoadSynsets reads a YAML file with a top-level "synsets" list. Values are
// lowercased
func LoadSynsets(path string) ([]synset.Synset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file struct {
		Synsets []synset.Synset `yaml:"synsets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := cleanSynsets(file.Synsets)
	if err := validateSynsets(out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
