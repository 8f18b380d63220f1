package resolve

import (
	"log/slog"
	"strconv"

	"skombo/internal/catalog"
	"skombo/internal/config"
	"skombo/internal/notation"
)

// State is a step of the fallback search. Non-terminal states run in
// declaration order.
type State int

const (
	StateCharacterSpecific State = iota
	StateRepeat
	StateStart
	StateFollowUp
	StateAlias
	StateGeneric
	StateNoStrength
	StateFound
	StateNotFound
)

var searchOrder = []State{
	StateCharacterSpecific,
	StateRepeat,
	StateStart,
	StateFollowUp,
	StateAlias,
	StateGeneric,
	StateNoStrength,
}

func (s State) String() string {
	switch s {
	case StateCharacterSpecific:
		return "character_specific"
	case StateRepeat:
		return "repeat"
	case StateStart:
		return "start"
	case StateFollowUp:
		return "follow_up"
	case StateAlias:
		return "alias"
	case StateGeneric:
		return "generic"
	case StateNoStrength:
		return "no_strength"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one token. State is the strategy
// that produced Entries, or StateNotFound. Token is the notation that was
// finally matched, which differs from the input when a strength letter had
// to be filled in.
type Resolution struct {
	Entries []catalog.Entry
	State   State
	Token   string
}

// Resolver is safe for concurrent use; per-combo state lives in Context.
type Resolver struct {
	catalog *catalog.Catalog
	rules   *config.Rules
	logger  *slog.Logger
}

func NewResolver(c *catalog.Catalog, rules *config.Rules, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{catalog: c, rules: rules, logger: logger}
}

type search struct {
	character string
	token     string
	performed map[State]bool
	// rows found by no_strength, used if the restarted search finds nothing
	fallback      []catalog.Entry
	fallbackToken string
}

func (s *search) next(current State, found bool) State {
	s.performed[current] = true
	if found && current != StateStart {
		return StateFound
	}
	for _, state := range searchOrder {
		if !s.performed[state] {
			return state
		}
	}
	return StateNotFound
}

// restart clears every performed strategy except no_strength and searches
// again for token.
func (s *search) restart(token string) State {
	s.token = token
	s.performed = map[State]bool{StateNoStrength: true}
	return StateCharacterSpecific
}

func (r *Resolver) Resolve(rctx *Context, character, token string) Resolution {
	if rctx == nil {
		rctx = NewContext()
	}
	s := &search{
		character: character,
		token:     token,
		performed: make(map[State]bool),
	}

	var (
		entries []catalog.Entry
		by      State
	)
	state := StateCharacterSpecific

	for {
		var rows []catalog.Entry

		switch state {
		case StateCharacterSpecific:
			rows = r.characterSpecific(rctx, s)
		case StateRepeat:
			rows = r.repeat(s)
		case StateStart:
			rows = r.catalog.Lookup(s.character, s.token)
		case StateFollowUp:
			rows = r.followUp(s, entries)
			if rows == nil && len(entries) > 0 {
				state = StateFound
				continue
			}
		case StateAlias:
			rows = r.alias(s)
		case StateGeneric:
			rows = r.generic(s)
		case StateNoStrength:
			substituted, found := r.noStrength(s)
			if len(found) > 0 {
				s.fallback = found
				s.fallbackToken = substituted
				r.logger.Debug("retrying with strength", "move", token, "as", substituted)
				state = s.restart(substituted)
				entries = nil
				continue
			}
		case StateFound:
			r.logger.Debug("found move", "move", token, "character", character, "state", by.String(), "rows", len(entries))
			return Resolution{Entries: entries, State: by, Token: s.token}
		case StateNotFound:
			if len(s.fallback) > 0 {
				r.logger.Debug("found move", "move", token, "character", character, "state", StateNoStrength.String(), "rows", len(s.fallback))
				return Resolution{Entries: s.fallback, State: StateNoStrength, Token: s.fallbackToken}
			}
			r.logger.Warn("move not found", "move", token, "character", character)
			return Resolution{State: StateNotFound, Token: token}
		}

		if len(rows) > 0 || state == StateStart {
			entries = rows
			by = state
		}
		state = s.next(state, len(rows) > 0)
	}
}

func (r *Resolver) characterSpecific(rctx *Context, s *search) []catalog.Entry {
	sequences := r.rules.For(s.character)
	if len(sequences) == 0 {
		return nil
	}

	name := s.token
	if canonical, ok := r.catalog.Canonical(name); ok {
		name = canonical
	}
	for _, seq := range sequences {
		if !notation.MatchMotion(name, seq.Motion, seq.Button) {
			continue
		}
		group := r.catalog.Group(s.character, seq.Group)
		if len(group) == 0 {
			r.logger.Warn("sequence group has no moves", "sequence", seq.Name, "group", seq.Group, "character", s.character)
			continue
		}
		presses := notation.Presses(name)
		r.logger.Debug("sequence move", "move", s.token, "sequence", seq.Name, "presses", presses, "consumed", rctx.Consumed(seq.Group))
		return rctx.Next(seq.Group, group, presses)
	}
	return nil
}

// repeat expands base x n into the base row followed by its numbered
// siblings. A base without any sibling is repeated n times; otherwise
// expansion stops at the first missing sibling.
func (r *Resolver) repeat(s *search) []catalog.Entry {
	base, count, ok := notation.SplitRepeat(s.token)
	if !ok {
		return nil
	}
	r.logger.Debug("repeat move", "move", s.token, "base", base, "count", count)

	baseRows := r.lookupWithAlias(s.character, base)
	if len(baseRows) == 0 {
		r.logger.Warn("could not find repeat base", "move", s.token, "base", base)
		return nil
	}

	stem := base
	if names := catalog.SplitNames(baseRows[0].MoveName); len(names) > 0 {
		stem = names[0]
	}

	rows := append([]catalog.Entry(nil), baseRows...)
	for i := 2; i <= count; i++ {
		sibling := r.catalog.Lookup(s.character, stem+"X"+strconv.Itoa(i))
		if len(sibling) > 0 {
			rows = append(rows, sibling...)
			continue
		}
		if i == 2 {
			for j := 2; j <= count; j++ {
				rows = append(rows, baseRows...)
			}
		}
		break
	}
	return rows
}

// followUp prepends the base move of a chained input to whatever start
// found for the whole token. It returns nil when the token is not chained.
func (r *Resolver) followUp(s *search, started []catalog.Entry) []catalog.Entry {
	base, follow, ok := notation.SplitFollowUp(s.token)
	if !ok {
		return nil
	}
	r.logger.Debug("follow-up move", "move", s.token, "base", base, "follow", follow)

	baseRows := r.lookupWithAlias(s.character, base)
	if len(baseRows) == 0 {
		r.logger.Warn("could not find base move for follow-up", "move", s.token, "base", base)
	}
	rows := make([]catalog.Entry, 0, len(baseRows)+len(started))
	rows = append(rows, baseRows...)
	return append(rows, started...)
}

func (r *Resolver) alias(s *search) []catalog.Entry {
	canonical, ok := r.catalog.Canonical(s.token)
	if !ok {
		return nil
	}
	r.logger.Debug("found alias", "move", s.token, "alias", canonical)
	return r.catalog.Lookup(s.character, canonical)
}

func (r *Resolver) generic(s *search) []catalog.Entry {
	prefix, _, rest, ok := notation.SplitStrength(s.token)
	if !ok {
		return nil
	}
	name := prefix + rest
	rows := r.catalog.Lookup(s.character, name)
	if len(rows) > 0 {
		r.logger.Debug("found generic move", "move", s.token, "as", name)
	}
	return rows
}

var strengthsByPreference = []byte{'H', 'M', 'L'}

// noStrength tries each strength for a button written without one and
// returns the substituted token with the rows of the highest strength that
// exists.
func (r *Resolver) noStrength(s *search) (string, []catalog.Entry) {
	prefix, rest, ok := notation.MissingStrength(s.token)
	if !ok {
		return "", nil
	}
	button := rest[:1]
	for _, strength := range strengthsByPreference {
		rows := r.lookupWithAlias(s.character, notation.WithStrength(prefix, strength, button))
		if len(rows) > 0 {
			return notation.WithStrength(prefix, strength, rest), rows
		}
	}
	return "", nil
}

func (r *Resolver) lookupWithAlias(character, name string) []catalog.Entry {
	if rows := r.catalog.Lookup(character, name); len(rows) > 0 {
		return rows
	}
	if canonical, ok := r.catalog.Canonical(name); ok {
		return r.catalog.Lookup(character, canonical)
	}
	return nil
}
