package combo

import (
	"fmt"
	"log/slog"
	"math"

	"skombo/internal/catalog"
	"skombo/internal/config"
	"skombo/internal/damage"
	"skombo/internal/notation"
	"skombo/internal/resolve"
)

type Input struct {
	Name           string
	Character      string
	ExpectedDamage float64
	Notation       string
}

// Step records how one notation token was resolved.
type Step struct {
	Token    string
	Resolved string
	State    resolve.State
	Moves    []string
	Kara     bool
}

type Report struct {
	Name              string
	Character         string
	Steps             []Step
	Hits              []damage.ScaledHit
	Moves             []damage.MoveTotal
	Unresolved        []string
	TotalDamage       int
	ExpectedDamage    int
	Difference        int
	PercentDifference float64
	// PercentDefined is false when the expected damage is zero.
	PercentDefined bool
}

type Options struct {
	// IgnoredMoves replaces notation.DefaultIgnored when non-nil.
	IgnoredMoves []string
	Logger       *slog.Logger
}

// Evaluator runs parse, resolve and damage for a combo. It holds no
// per-combo state and may be shared between goroutines.
type Evaluator struct {
	catalog  *catalog.Catalog
	parser   *notation.Parser
	resolver *resolve.Resolver
	engine   *damage.Engine
	logger   *slog.Logger
}

func NewEvaluator(c *catalog.Catalog, rules *config.Rules, opts Options) *Evaluator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ignored := opts.IgnoredMoves
	if ignored == nil {
		ignored = notation.DefaultIgnored
	}
	return &Evaluator{
		catalog:  c,
		parser:   notation.NewParser(ignored, logger),
		resolver: resolve.NewResolver(c, rules, logger),
		engine:   damage.NewEngine(logger),
		logger:   logger,
	}
}

func (e *Evaluator) Resolver() *resolve.Resolver {
	return e.resolver
}

func (e *Evaluator) Evaluate(in Input) (*Report, error) {
	character, err := e.catalog.Character(in.Character)
	if err != nil {
		return nil, fmt.Errorf("evaluating combo %q: %w", in.Name, err)
	}

	tokens := e.parser.Parse(in.Notation)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("evaluating combo %q: no moves in notation: %w", in.Name, catalog.ErrInvalidInput)
	}

	logger := e.logger.With("combo", in.Name, "character", character)
	logger.Debug("evaluating combo", "tokens", len(tokens))

	report := &Report{Name: in.Name, Character: character}
	rctx := resolve.NewContext()
	items := make([]damage.Item, 0, len(tokens))

	for _, token := range tokens {
		if token.Kind == notation.KindKara {
			items = append(items, damage.Item{Token: token.Text, Kara: true})
			report.Steps = append(report.Steps, Step{Token: token.Text, Kara: true})
			continue
		}

		res := e.resolver.Resolve(rctx, character, token.Text)
		if res.State == resolve.StateNotFound {
			report.Unresolved = append(report.Unresolved, token.Text)
		}
		step := Step{Token: token.Text, Resolved: res.Token, State: res.State}
		for _, entry := range res.Entries {
			step.Moves = append(step.Moves, entry.MoveName)
		}
		report.Steps = append(report.Steps, step)
		items = append(items, damage.Item{Token: token.Text, Entries: res.Entries})
	}

	result, err := e.engine.Compute(items)
	if err != nil {
		return nil, fmt.Errorf("evaluating combo %q: %w", in.Name, err)
	}

	report.Hits = result.Hits
	report.Moves = result.Moves
	report.TotalDamage = result.Total
	report.ExpectedDamage = int(math.Round(in.ExpectedDamage))
	report.Difference = report.TotalDamage - report.ExpectedDamage

	if in.ExpectedDamage == 0 {
		logger.Warn("expected damage is zero, percent difference undefined")
	} else {
		report.PercentDifference = (float64(report.TotalDamage) - in.ExpectedDamage) / in.ExpectedDamage * 100
		report.PercentDefined = true
	}

	logger.Debug("combo evaluated",
		"total", report.TotalDamage,
		"expected", report.ExpectedDamage,
		"difference", report.Difference,
	)
	return report, nil
}
