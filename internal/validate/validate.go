package validate

import (
	"errors"
	"fmt"

	"skombo/internal/catalog"
	"skombo/internal/combo"
	"skombo/internal/config"
	"skombo/internal/damage"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeInvalidDamage      = "invalid_damage"
	codeMissingDamage      = "missing_damage"
	codeDuplicateName      = "duplicate_move_name"
	codeDeadAlias          = "dead_alias"
	codeUnknownCharacter   = "unknown_character"
	codeEmptySequenceGroup = "empty_sequence_group"
	codeComboFailed        = "combo_failed"
	codeUnresolvedMove     = "unresolved_move"
)

type Issue struct {
	Severity  Severity
	Code      string
	Message   string
	Character string
	Move      string
	Combo     string
}

type Report struct {
	Issues []Issue
}

// Errors counts issues of error severity.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// AddComboFailure records a combo that could not be loaded.
func (r *Report) AddComboFailure(name string, err error) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityError,
		Code:     codeComboFailed,
		Message:  err.Error(),
		Combo:    name,
	})
}

// Run checks the catalog, the sequence rules and, when given, a set of
// combos evaluated against them.
func Run(c *catalog.Catalog, rules *config.Rules, combos []combo.Input, opts combo.Options) (*Report, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	issues := make([]Issue, 0)
	for _, character := range c.Characters() {
		moves, err := c.Moves(character)
		if err != nil {
			return nil, fmt.Errorf("list moves for %s: %w", character, err)
		}
		issues = append(issues, validateDamage(character, moves)...)
		issues = append(issues, validateDuplicateNames(character, moves)...)
	}
	issues = append(issues, validateAliases(c)...)
	if rules != nil {
		issues = append(issues, validateSequences(c, rules)...)
	}

	if len(combos) > 0 {
		evaluator := combo.NewEvaluator(c, rules, opts)
		for _, in := range combos {
			issues = append(issues, validateCombo(evaluator, in)...)
		}
	}

	return &Report{Issues: issues}, nil
}

func validateDamage(character string, moves []catalog.Entry) []Issue {
	var issues []Issue
	for _, move := range moves {
		spec, err := damage.ParseSpec(move.MoveName, move.Damage)
		if err != nil {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Code:      codeInvalidDamage,
				Message:   err.Error(),
				Character: character,
				Move:      move.MoveName,
			})
			continue
		}
		if len(spec.Hits) == 0 {
			issues = append(issues, Issue{
				Severity:  SeverityWarn,
				Code:      codeMissingDamage,
				Message:   "move has no damage value",
				Character: character,
				Move:      move.MoveName,
			})
		}
	}
	return issues
}

func validateDuplicateNames(character string, moves []catalog.Entry) []Issue {
	counts := make(map[string]int)
	var order []string
	spelling := make(map[string]string)
	for _, move := range moves {
		for _, name := range catalog.SplitNames(move.MoveName) {
			key := catalog.Fold(name)
			if _, ok := counts[key]; !ok {
				order = append(order, key)
				spelling[key] = name
			}
			counts[key]++
		}
	}

	var issues []Issue
	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		issues = append(issues, Issue{
			Severity:  SeverityWarn,
			Code:      codeDuplicateName,
			Message:   fmt.Sprintf("move name used by %d rows", counts[key]),
			Character: character,
			Move:      spelling[key],
		})
	}
	return issues
}

func validateAliases(c *catalog.Catalog) []Issue {
	var issues []Issue
	for _, alias := range c.Aliases() {
		if alias.Key == "" {
			continue
		}
		found := false
		for _, character := range c.Characters() {
			if len(c.Lookup(character, alias.Key)) > 0 {
				found = true
				break
			}
		}
		if found {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeDeadAlias,
			Message:  "alias does not name any move",
			Move:     alias.Key,
		})
	}
	return issues
}

func validateSequences(c *catalog.Catalog, rules *config.Rules) []Issue {
	var issues []Issue
	for _, seq := range rules.Sequences {
		character, err := c.Character(seq.Character)
		if err != nil {
			issues = append(issues, Issue{
				Severity:  SeverityWarn,
				Code:      codeUnknownCharacter,
				Message:   fmt.Sprintf("sequence %s names a character with no moves", seq.Name),
				Character: seq.Character,
			})
			continue
		}
		if len(c.Group(character, seq.Group)) == 0 {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Code:      codeEmptySequenceGroup,
				Message:   fmt.Sprintf("sequence %s group %q matches no moves", seq.Name, seq.Group),
				Character: character,
			})
		}
	}
	return issues
}

func validateCombo(e *combo.Evaluator, in combo.Input) []Issue {
	report, err := e.Evaluate(in)
	if err != nil {
		issue := Issue{
			Severity:  SeverityError,
			Code:      codeComboFailed,
			Message:   err.Error(),
			Character: in.Character,
			Combo:     in.Name,
		}
		var parseErr *damage.ParseError
		if errors.As(err, &parseErr) {
			issue.Move = parseErr.Move
		}
		return []Issue{issue}
	}

	var issues []Issue
	for _, token := range report.Unresolved {
		issues = append(issues, Issue{
			Severity:  SeverityWarn,
			Code:      codeUnresolvedMove,
			Message:   "move not found in catalog",
			Character: report.Character,
			Move:      token,
			Combo:     in.Name,
		})
	}
	return issues
}
