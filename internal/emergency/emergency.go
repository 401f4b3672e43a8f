// Package emergency flags queries that mention a safety-critical situation.
package emergency

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// DefaultKeywords covers English and Bengali phrasing of threats to life or safety.
var DefaultKeywords = []string{
	"threat", "assault", "rape", "murder", "abduction", "kidnap", "suicide", "violence",
	"হুমকি", "হামলা", "ধর্ষণ", "খুন", "হত্যা", "অপহরণ", "আত্মহত্যা", "নির্যাতন",
}

// Verdict is the classifier's answer for one query.
type Verdict struct {
	Emergency bool
	Matched   []string
}

// Classifier does case-insensitive substring matching against a fixed keyword set.
// Any single hit flags the query; there is no scoring or negation handling.
type Classifier struct {
	keywords []string // as configured, for reporting
	folded   []string // normalized for matching
}

// New builds a classifier. Blank and duplicate keywords are dropped.
func New(keywords []string) *Classifier {
	c := &Classifier{}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		f := fold(kw)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		c.keywords = append(c.keywords, kw)
		c.folded = append(c.folded, f)
	}
	return c
}

// Keywords returns the active keyword set in configured order.
func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

// Classify reports every keyword contained in query.
func (c *Classifier) Classify(query string) Verdict {
	q := fold(query)
	var v Verdict
	for i, f := range c.folded {
		if strings.Contains(q, f) {
			v.Matched = append(v.Matched, c.keywords[i])
		}
	}
	v.Emergency = len(v.Matched) > 0
	return v
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordFile reads a YAML document of the form `keywords: [..]`.
func LoadKeywordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}
	return kf.Keywords, nil
}

// Resolve picks the keyword set: explicit overrides replace the defaults and
// keywords from file (if any) are added on top.
func Resolve(overrides []string, file string) ([]string, error) {
	keywords := DefaultKeywords
	if len(overrides) > 0 {
		keywords = overrides
	}
	keywords = append([]string(nil), keywords...)
	if file != "" {
		extra, err := LoadKeywordFile(file)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, extra...)
	}
	return keywords, nil
}
