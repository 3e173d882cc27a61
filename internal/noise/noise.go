package noise

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// Vocabulary lists the labels a Classifier treats as noise
type Vocabulary struct {
	// Exact labels, compared case-insensitively after trimming
	Exact []string `json:"exact" yaml:"exact" mapstructure:"exact"`

	// Patterns are regular expressions matched case-insensitively against the
	// whole trimmed label
	Patterns []string `json:"patterns" yaml:"patterns" mapstructure:"patterns"`
}

// DefaultVocabulary returns the tiers, placements, status words and
// placeholders seen on player history tables
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Exact: []string{
			"S-Tier", "A-Tier", "B-Tier", "C-Tier", "D-Tier",
			"Retired", "Inactive", "Active",
			"Qualifier", "Qualifiers", "Showmatch",
			"1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th",
			"3rd - 4th", "5th - 6th", "7th - 8th",
			"TBD", "TBA", "Unknown", "N/A", "None",
		},
		Patterns: []string{
			`^[SABCD]-Tier$`,
			`^\d+(?:st|nd|rd|th)$`,
			`^\d+(?:st|nd|rd|th)\s*-\s*\d+(?:st|nd|rd|th)$`,
			`^(?:Retired|Inactive|Active)$`,
			`^(?:Qualifiers?|Showmatch)$`,
			`^(?:TBD|TBA|Unknown|N/A|None)$`,
			`^\d+$`,
		},
	}
}

// Extend returns a copy of v with extra exact labels and patterns appended
func (v Vocabulary) Extend(exact, patterns []string) Vocabulary {
	out := Vocabulary{
		Exact:    make([]string, 0, len(v.Exact)+len(exact)),
		Patterns: make([]string, 0, len(v.Patterns)+len(patterns)),
	}
	out.Exact = append(append(out.Exact, v.Exact...), exact...)
	out.Patterns = append(append(out.Patterns, v.Patterns...), patterns...)
	return out
}

// Classifier tells real teams from noise labels. It is safe for concurrent
// use; nothing in it changes after New returns.
type Classifier struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

// New compiles a vocabulary into a Classifier
func New(v Vocabulary) (*Classifier, error) {
	c := &Classifier{
		exact:    make(map[string]struct{}, len(v.Exact)),
		patterns: make([]*regexp.Regexp, 0, len(v.Patterns)),
	}

	for _, label := range v.Exact {
		c.exact[fold(label)] = struct{}{}
	}

	for _, p := range v.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, eris.Wrapf(err, "noise: compile pattern %q", p)
		}
		c.patterns = append(c.patterns, re)
	}

	return c, nil
}

// Default returns a Classifier for DefaultVocabulary
func Default() *Classifier {
	c, err := New(DefaultVocabulary())
	if err != nil {
		panic(err)
	}
	return c
}

// IsNoise reports whether team is not a real team.
// Blank labels are noise, then exact labels, then patterns.
func (c *Classifier) IsNoise(team string) bool {
	label := strings.TrimSpace(team)
	if label == "" {
		return true
	}

	if _, ok := c.exact[fold(label)]; ok {
		return true
	}

	for _, re := range c.patterns {
		if re.MatchString(label) {
			return true
		}
	}

	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
