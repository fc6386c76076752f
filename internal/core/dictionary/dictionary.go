// Package dictionary loads and compiles the topic dictionaries and the company roster.
// A Registry is built once at process start and passed by pointer to every consumer
package dictionary

import (
	_ "embed"
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	perr "oilwatch/internal/platform/errors"
)

//go:embed dictionaries.json
var embeddedDictionaries []byte

//go:embed companies.json
var embeddedCompanies []byte

// SupportedVersion is the only dictionary file version Load accepts
const SupportedVersion = 1

type rawTerm struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Color   string `json:"color" yaml:"color"`
}

type rawDictionary struct {
	Key   string    `json:"key" yaml:"key"`
	Label string    `json:"label" yaml:"label"`
	Color string    `json:"color" yaml:"color"`
	Terms []rawTerm `json:"terms" yaml:"terms"`
}

type rawFile struct {
	Version      int             `json:"version" yaml:"version"`
	Dictionaries []rawDictionary `json:"dictionaries" yaml:"dictionaries"`
}

// Term is one term-pattern with its display color. A pattern may encode
// disjunction ("sustain|sustainability") and is still one term
type Term struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Color   string `json:"color" yaml:"color"`

	re *regexp.Regexp
}

// Regexp returns the compiled, lowercased pattern
func (t Term) Regexp() *regexp.Regexp { return t.re }

// Dictionary is a named, ordered set of term-patterns
type Dictionary struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
	Terms []Term `json:"terms" yaml:"terms"`

	combined *regexp.Regexp
}

// Combined returns the alternation of every term pattern in the dictionary
func (d Dictionary) Combined() *regexp.Regexp { return d.combined }

// Patterns returns the term patterns in authoring order
func (d Dictionary) Patterns() []string {
	out := make([]string, len(d.Terms))
	for i, t := range d.Terms {
		out[i] = t.Pattern
	}
	return out
}

// Registry is the immutable set of dictionaries and company colors
type Registry struct {
	version   int
	dicts     []Dictionary
	byKey     map[string]int
	companies map[string]string
}

// Load builds the registry from the embedded defaults. When path is non-empty
// the YAML (or JSON) file at path replaces the embedded dictionaries
func Load(path string) (*Registry, error) {
	var rf rawFile
	if path == "" {
		if err := json.Unmarshal(embeddedDictionaries, &rf); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfig, "dictionary: parse embedded dictionaries.json")
		}
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "dictionary: read %s", path)
		}
		// yaml is a superset of json so one decoder covers both file flavors
		if err := yaml.Unmarshal(b, &rf); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "dictionary: parse %s", path)
		}
	}

	var companies map[string]string
	if err := json.Unmarshal(embeddedCompanies, &companies); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "dictionary: parse embedded companies.json")
	}

	if rf.Version != SupportedVersion {
		return nil, perr.Configf("dictionary: unsupported dictionary file version %d (want %d)", rf.Version, SupportedVersion)
	}

	dicts := make([]Dictionary, 0, len(rf.Dictionaries))
	for _, rd := range rf.Dictionaries {
		d := Dictionary{Key: rd.Key, Label: rd.Label, Color: rd.Color}
		for _, rt := range rd.Terms {
			d.Terms = append(d.Terms, Term{Pattern: rt.Pattern, Color: rt.Color})
		}
		dicts = append(dicts, d)
	}
	return New(dicts, companies)
}

// MustLoad is Load that panics on error; for binaries and tests
func MustLoad(path string) *Registry {
	r, err := Load(path)
	if err != nil {
		panic(err)
	}
	return r
}

// New validates and compiles dicts into a Registry. Every pattern is lowercased
// before compiling; an invalid pattern fails with ErrorCodeConfig naming the
// dictionary key and the term
func New(dicts []Dictionary, companies map[string]string) (*Registry, error) {
	r := &Registry{
		version:   SupportedVersion,
		dicts:     make([]Dictionary, 0, len(dicts)),
		byKey:     make(map[string]int, len(dicts)),
		companies: make(map[string]string, len(companies)),
	}

	for _, in := range dicts {
		key := strings.TrimSpace(in.Key)
		if key == "" {
			return nil, perr.Configf("dictionary: empty key (label %q)", in.Label)
		}
		if _, dup := r.byKey[key]; dup {
			return nil, perr.Configf("dictionary: duplicate key %q", key)
		}
		if len(in.Terms) == 0 {
			return nil, perr.Configf("dictionary %q: no terms", key)
		}

		d := Dictionary{Key: key, Label: in.Label, Color: in.Color}
		if d.Label == "" {
			d.Label = key
		}

		seen := make(map[string]struct{}, len(in.Terms))
		parts := make([]string, 0, len(in.Terms))
		for _, t := range in.Terms {
			p := strings.ToLower(strings.TrimSpace(t.Pattern))
			if p == "" {
				return nil, perr.Configf("dictionary %q: empty term pattern", key)
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}

			re, err := regexp.Compile(p)
			if err != nil {
				return nil, perr.WithField(
					perr.Wrapf(err, perr.ErrorCodeConfig, "dictionary %q: invalid term %q", key, t.Pattern),
					key,
				)
			}
			d.Terms = append(d.Terms, Term{Pattern: p, Color: t.Color, re: re})
			parts = append(parts, p)
		}

		combined, err := regexp.Compile(strings.Join(parts, "|"))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "dictionary %q: invalid combined pattern", key)
		}
		d.combined = combined

		r.byKey[key] = len(r.dicts)
		r.dicts = append(r.dicts, d)
	}

	for name, color := range companies {
		r.companies[name] = color
	}
	return r, nil
}

// Version returns the dictionary file version
func (r *Registry) Version() int { return r.version }

// Len returns the number of dictionaries
func (r *Registry) Len() int { return len(r.dicts) }

// All returns the dictionaries in authoring order. The slice is a copy
func (r *Registry) All() []Dictionary {
	out := make([]Dictionary, len(r.dicts))
	copy(out, r.dicts)
	return out
}

// Keys returns the dictionary keys in authoring order
func (r *Registry) Keys() []string {
	out := make([]string, len(r.dicts))
	for i, d := range r.dicts {
		out[i] = d.Key
	}
	return out
}

// Get looks a dictionary up by key
func (r *Registry) Get(key string) (Dictionary, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Dictionary{}, false
	}
	return r.dicts[i], true
}

// Lookup is Get returning a NotFound error for unknown keys
func (r *Registry) Lookup(key string) (Dictionary, error) {
	d, ok := r.Get(key)
	if !ok {
		return Dictionary{}, perr.WithField(perr.NotFoundf("unknown dictionary %q", key), "dictionary")
	}
	return d, nil
}

// CompanyColor returns the roster color for a company
func (r *Registry) CompanyColor(name string) (string, bool) {
	c, ok := r.companies[name]
	return c, ok
}

// CompanyColors returns a copy of the roster color map
func (r *Registry) CompanyColors() map[string]string {
	out := make(map[string]string, len(r.companies))
	for k, v := range r.companies {
		out[k] = v
	}
	return out
}

// Roster returns the rostered company names sorted
func (r *Registry) Roster() []string {
	out := make([]string, 0, len(r.companies))
	for k := range r.companies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
