package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed trails.yaml
var defaultTrails []byte

// trailFile is the on-disk YAML layout of a catalog.
type trailFile struct {
	Modules []moduleRecord `yaml:"modules"`
}

type moduleRecord struct {
	ID            string           `yaml:"id"`
	Title         string           `yaml:"title"`
	Description   string           `yaml:"description"`
	Hazard        string           `yaml:"hazard"`
	EstimatedTime string           `yaml:"estimated_time"`
	Reward        string           `yaml:"reward"`
	Pages         []pageRecord     `yaml:"pages"`
	Quiz          []questionRecord `yaml:"quiz"`
}

type pageRecord struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Kind  string `yaml:"kind"`
	Hint  string `yaml:"hint"`
}

type questionRecord struct {
	ID          string   `yaml:"id"`
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// Load reads and parses a YAML trail file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trail file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML trail document, checks it against the trail schema
// and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validateShape(doc); err != nil {
		return nil, err
	}

	var file trailFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode trail file: %w", err)
	}

	modules := make([]Module, 0, len(file.Modules))
	for _, r := range file.Modules {
		modules = append(modules, r.toModule())
	}
	return New(modules)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultTrails)
})

// Default returns the built-in trail catalog. The embedded file is covered by
// tests, so a failure here is a build defect.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded trails are invalid: %v", err))
	}
	return c
}

func (r moduleRecord) toModule() Module {
	hazard := Hazard(r.Hazard)
	if hazard == "" {
		hazard = HazardGeneral
	}

	m := Module{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Hazard:        hazard,
		EstimatedTime: r.EstimatedTime,
		Reward:        r.Reward,
		Pages:         make([]ContentPage, 0, len(r.Pages)),
		Quiz:          make([]QuizQuestion, 0, len(r.Quiz)),
	}
	for _, p := range r.Pages {
		kind := PageKind(p.Kind)
		if kind == "" {
			kind = PageText
		}
		m.Pages = append(m.Pages, ContentPage{
			Title: p.Title,
			Body:  p.Body,
			Kind:  kind,
			Hint:  p.Hint,
		})
	}
	for _, q := range r.Quiz {
		m.Quiz = append(m.Quiz, QuizQuestion{
			ID:            q.ID,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
		})
	}
	return m
}
