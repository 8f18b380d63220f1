package notation

import (
	"log/slog"
	"sort"
	"strings"
)

type Kind int

const (
	KindMove Kind = iota
	KindKara
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindKara:
		return "kara"
	default:
		return "unknown"
	}
}

type Token struct {
	Kind Kind
	Text string
}

const karaMarker = "kara"

// DefaultIgnored lists notation that describes movement or timing rather
// than an attack.
var DefaultIgnored = []string{
	"adc",
	"air dash cancel",
	"air dash",
	"delay",
	"delayed",
	"delaying",
	"jc",
	"jump cancel",
	"jump",
	"otg",
	"dash",
	"66",
	"restand",
}

// Cells left behind by spreadsheet exports of empty values.
var artifacts = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
}

type Parser struct {
	phrases [][]string
	logger  *slog.Logger
}

func NewParser(ignored []string, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Parser{logger: logger}
	for _, phrase := range ignored {
		words := strings.Fields(strings.ToLower(phrase))
		if len(words) == 0 {
			continue
		}
		p.phrases = append(p.phrases, words)
	}
	sort.SliceStable(p.phrases, func(i, j int) bool {
		return len(p.phrases[i]) > len(p.phrases[j])
	})
	return p
}

// Parse splits a combo string into move and kara tokens in input order.
func (p *Parser) Parse(combo string) []Token {
	fields := strings.Fields(combo)
	tokens := make([]Token, 0, len(fields))

	for i := 0; i < len(fields); {
		if n := p.ignoredAt(fields, i); n > 0 {
			p.logger.Debug("ignoring notation", "move", strings.Join(fields[i:i+n], " "))
			i += n
			continue
		}

		field := fields[i]
		i++

		if _, ok := artifacts[strings.ToLower(field)]; ok {
			p.logger.Debug("skipping non-string token", "token", field)
			continue
		}
		if strings.EqualFold(field, karaMarker) {
			tokens = append(tokens, Token{Kind: KindKara, Text: field})
			continue
		}
		tokens = append(tokens, Token{Kind: KindMove, Text: field})
	}

	return tokens
}

func (p *Parser) ignoredAt(fields []string, i int) int {
	for _, phrase := range p.phrases {
		if i+len(phrase) > len(fields) {
			continue
		}
		matched := true
		for j, word := range phrase {
			if !strings.EqualFold(fields[i+j], word) {
				matched = false
				break
			}
		}
		if matched {
			return len(phrase)
		}
	}
	return 0
}
