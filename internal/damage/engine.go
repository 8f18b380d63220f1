package damage

import (
	"log/slog"

	"skombo/internal/catalog"
)

type Hit struct {
	MoveName     string
	Damage       int
	HitInMove    int
	Chip         []string
	Special      []string
	KaraCanceled bool
}

// ScaledHit is a Hit placed in the combo. HitNumber only advances on hits
// that deal damage; a zero-damage hit carries the number of the hit before it.
type ScaledHit struct {
	Hit
	HitNumber     int
	Scaling       float64
	ScaledDamage  int
	TotalForCombo int
	TotalForMove  int
}

// MoveTotal sums a run of consecutive hits sharing a move name.
type MoveTotal struct {
	MoveName string
	Hits     int
	Damage   int
}

type Result struct {
	Hits  []ScaledHit
	Moves []MoveTotal
	Total int
}

// Item is one position of a resolved combo: either the catalog rows a token
// resolved to, or a kara cancel of the hit before it.
type Item struct {
	Token   string
	Entries []catalog.Entry
	Kara    bool
}

type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Compute expands the items into hits and scales them in order.
func (e *Engine) Compute(items []Item) (*Result, error) {
	hits, err := e.expand(items)
	if err != nil {
		return nil, err
	}
	return scale(hits), nil
}

func (e *Engine) expand(items []Item) ([]Hit, error) {
	var hits []Hit
	for _, item := range items {
		if item.Kara {
			if len(hits) == 0 {
				e.logger.Warn("kara cancel with no previous hit", "token", item.Token)
				continue
			}
			last := &hits[len(hits)-1]
			e.logger.Debug("kara cancel", "move", last.MoveName, "damage", last.Damage)
			last.Damage = 0
			last.KaraCanceled = true
			continue
		}

		for _, entry := range item.Entries {
			spec, err := ParseSpec(entry.MoveName, entry.Damage)
			if err != nil {
				return nil, err
			}
			if len(spec.Hits) == 0 {
				e.logger.Debug("move has no damage", "move", entry.MoveName)
				continue
			}
			for i, dmg := range spec.Hits {
				hits = append(hits, Hit{
					MoveName:  entry.MoveName,
					Damage:    dmg,
					HitInMove: i + 1,
					Chip:      spec.Chip,
					Special:   spec.Special,
				})
			}
		}
	}
	return hits, nil
}

func scale(hits []Hit) *Result {
	result := &Result{Hits: make([]ScaledHit, 0, len(hits))}

	counter := 0
	moveTotal := 0
	for i, hit := range hits {
		n := counter + 1
		if hit.Damage > 0 {
			counter++
		}

		scaling := Scaling(n, hit.Damage)
		scaled := Scaled(hit.Damage, scaling)
		result.Total += scaled

		if i == 0 || hits[i-1].MoveName != hit.MoveName {
			moveTotal = 0
			result.Moves = append(result.Moves, MoveTotal{MoveName: hit.MoveName})
		}
		moveTotal += scaled
		move := &result.Moves[len(result.Moves)-1]
		move.Hits++
		move.Damage = moveTotal

		result.Hits = append(result.Hits, ScaledHit{
			Hit:           hit,
			HitNumber:     counter,
			Scaling:       scaling,
			ScaledDamage:  scaled,
			TotalForCombo: result.Total,
			TotalForMove:  moveTotal,
		})
	}
	return result
}
