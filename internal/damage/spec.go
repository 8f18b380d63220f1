package damage

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a damage token that is neither a number nor a
// <damage>x<count> repeat.
type ParseError struct {
	Move  string
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing damage for move %q: malformed token %q", e.Move, e.Token)
}

// Spec is a parsed damage cell: one value per hit, plus the chip "( )" and
// special "[ ]" annotations that were stripped before parsing.
type Spec struct {
	Hits    []int
	Chip    []string
	Special []string
}

// ParseSpec parses a catalog damage cell such as "100,2x3(50)[armor]".
// An empty cell has no hits.
func ParseSpec(move, raw string) (Spec, error) {
	var spec Spec

	rest, chip, err := extract(move, raw, '(', ')')
	if err != nil {
		return Spec{}, err
	}
	rest, special, err := extract(move, rest, '[', ']')
	if err != nil {
		return Spec{}, err
	}
	spec.Chip = chip
	spec.Special = special

	for _, token := range strings.Split(rest, ",") {
		token = strings.Join(strings.Fields(token), "")
		if token == "" {
			continue
		}
		if dmg, count, ok := splitMultiHit(token); ok {
			for i := 0; i < count; i++ {
				spec.Hits = append(spec.Hits, dmg)
			}
			continue
		}
		dmg, ok := parseNumber(token)
		if !ok {
			return Spec{}, &ParseError{Move: move, Token: token}
		}
		spec.Hits = append(spec.Hits, dmg)
	}

	return spec, nil
}

// extract removes every open...close group from s and returns the groups,
// delimiters included.
func extract(move, s string, open, close byte) (string, []string, error) {
	var (
		groups []string
		b      strings.Builder
	)
	for {
		start := strings.IndexByte(s, open)
		if start < 0 {
			if strings.IndexByte(s, close) >= 0 {
				return "", nil, &ParseError{Move: move, Token: s}
			}
			b.WriteString(s)
			return b.String(), groups, nil
		}
		end := strings.IndexByte(s[start:], close)
		if end < 0 {
			return "", nil, &ParseError{Move: move, Token: s[start:]}
		}
		end += start
		b.WriteString(s[:start])
		groups = append(groups, s[start:end+1])
		s = s[end+1:]
	}
}

func splitMultiHit(token string) (int, int, bool) {
	i := strings.IndexAny(token, "xX")
	if i <= 0 || i == len(token)-1 {
		return 0, 0, false
	}
	dmg, ok := parseNumber(token[:i])
	if !ok {
		return 0, 0, false
	}
	count, ok := parseNumber(token[i+1:])
	if !ok {
		return 0, 0, false
	}
	return dmg, count, true
}

func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
