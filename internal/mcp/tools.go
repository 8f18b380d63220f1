package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"skombo/internal/catalog"
	"skombo/internal/combo"
	"skombo/internal/resolve"
)

type CalculateComboInput struct {
	Character      string  `json:"character" jsonschema:"character name"`
	Notation       string  `json:"notation" jsonschema:"combo notation, e.g. 5LP 5MP jc j.HP 214HP~P"`
	ExpectedDamage float64 `json:"expected_damage,omitempty" jsonschema:"damage the combo is known to deal"`
	Name           string  `json:"name,omitempty" jsonschema:"optional combo name"`
}

type ResolveMoveInput struct {
	Character string `json:"character" jsonschema:"character name"`
	Move      string `json:"move" jsonschema:"move notation"`
}

type ListCharactersInput struct{}

type ListMovesInput struct {
	Character string `json:"character" jsonschema:"character name"`
}

type HitOutput struct {
	MoveName      string  `json:"move_name"`
	HitNumber     int     `json:"hit_number"`
	Damage        int     `json:"damage"`
	Scaling       float64 `json:"scaling"`
	ScaledDamage  int     `json:"scaled_damage"`
	TotalForCombo int     `json:"total_for_combo"`
	KaraCanceled  bool    `json:"kara_canceled,omitempty"`
}

type StepOutput struct {
	Token    string   `json:"token"`
	Resolved string   `json:"resolved,omitempty"`
	State    string   `json:"state"`
	Moves    []string `json:"moves"`
}

type CalculateComboOutput struct {
	Character            string       `json:"character"`
	Steps                []StepOutput `json:"steps"`
	Hits                 []HitOutput  `json:"hits"`
	Unresolved           []string     `json:"unresolved"`
	TotalDamage          int          `json:"total_damage"`
	ExpectedDamage       int          `json:"expected_damage"`
	Difference           int          `json:"difference"`
	PercentageDifference string       `json:"percentage_difference"`
}

type MoveOutput struct {
	Character string   `json:"character"`
	MoveName  string   `json:"move_name"`
	AltNames  []string `json:"alt_names"`
	Damage    string   `json:"damage"`
}

type ResolveMoveOutput struct {
	State    string       `json:"state"`
	Resolved string       `json:"resolved"`
	Moves    []MoveOutput `json:"moves"`
}

type CharacterOutput struct {
	Name  string `json:"name"`
	Moves int    `json:"moves"`
}

type ListCharactersOutput struct {
	Characters []CharacterOutput `json:"characters"`
}

type ListMovesOutput struct {
	Moves []MoveOutput `json:"moves"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "calculate_combo",
		Description: "Calculate the scaled damage of a combo for a character",
	}, s.handleCalculateCombo)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_move",
		Description: "Show which catalog rows a move notation resolves to",
	}, s.handleResolveMove)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_characters",
		Description: "List characters in the move catalog",
	}, s.handleListCharacters)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_moves",
		Description: "List a character's moves with their damage",
	}, s.handleListMoves)
}

func (s *Server) handleCalculateCombo(ctx context.Context, req *sdk.CallToolRequest, input CalculateComboInput) (*sdk.CallToolResult, CalculateComboOutput, error) {
	if input.Character == "" {
		return nil, CalculateComboOutput{}, fmt.Errorf("character is required")
	}
	if strings.TrimSpace(input.Notation) == "" {
		return nil, CalculateComboOutput{}, fmt.Errorf("notation is required")
	}

	report, err := s.evaluator.Evaluate(combo.Input{
		Name:           input.Name,
		Character:      input.Character,
		ExpectedDamage: input.ExpectedDamage,
		Notation:       input.Notation,
	})
	if err != nil {
		return nil, CalculateComboOutput{}, err
	}
	return nil, comboOutputFromReport(report), nil
}

func (s *Server) handleResolveMove(ctx context.Context, req *sdk.CallToolRequest, input ResolveMoveInput) (*sdk.CallToolResult, ResolveMoveOutput, error) {
	if input.Move == "" {
		return nil, ResolveMoveOutput{}, fmt.Errorf("move is required")
	}
	character, err := s.catalog.Character(input.Character)
	if err != nil {
		return nil, ResolveMoveOutput{}, err
	}

	res := s.evaluator.Resolver().Resolve(resolve.NewContext(), character, input.Move)
	output := ResolveMoveOutput{
		State:    res.State.String(),
		Resolved: res.Token,
		Moves:    make([]MoveOutput, 0, len(res.Entries)),
	}
	for _, entry := range res.Entries {
		output.Moves = append(output.Moves, moveOutputFromEntry(entry))
	}
	return nil, output, nil
}

func (s *Server) handleListCharacters(ctx context.Context, req *sdk.CallToolRequest, input ListCharactersInput) (*sdk.CallToolResult, ListCharactersOutput, error) {
	names := s.catalog.Characters()
	output := make([]CharacterOutput, 0, len(names))
	for _, name := range names {
		moves, err := s.catalog.Moves(name)
		if err != nil {
			return nil, ListCharactersOutput{}, err
		}
		output = append(output, CharacterOutput{Name: name, Moves: len(moves)})
	}
	return nil, ListCharactersOutput{Characters: output}, nil
}

func (s *Server) handleListMoves(ctx context.Context, req *sdk.CallToolRequest, input ListMovesInput) (*sdk.CallToolResult, ListMovesOutput, error) {
	if input.Character == "" {
		return nil, ListMovesOutput{}, fmt.Errorf("character is required")
	}
	moves, err := s.catalog.Moves(input.Character)
	if err != nil {
		return nil, ListMovesOutput{}, err
	}

	output := make([]MoveOutput, 0, len(moves))
	for _, move := range moves {
		output = append(output, moveOutputFromEntry(move))
	}
	return nil, ListMovesOutput{Moves: output}, nil
}

func comboOutputFromReport(report *combo.Report) CalculateComboOutput {
	out := CalculateComboOutput{
		Character:            report.Character,
		Steps:                make([]StepOutput, 0, len(report.Steps)),
		Hits:                 make([]HitOutput, 0, len(report.Hits)),
		Unresolved:           append([]string{}, report.Unresolved...),
		TotalDamage:          report.TotalDamage,
		ExpectedDamage:       report.ExpectedDamage,
		Difference:           report.Difference,
		PercentageDifference: combo.PercentLabel(report),
	}
	for _, step := range report.Steps {
		state := step.State.String()
		if step.Kara {
			state = "kara"
		}
		out.Steps = append(out.Steps, StepOutput{
			Token:    step.Token,
			Resolved: step.Resolved,
			State:    state,
			Moves:    append([]string{}, step.Moves...),
		})
	}
	for _, hit := range report.Hits {
		out.Hits = append(out.Hits, HitOutput{
			MoveName:      hit.MoveName,
			HitNumber:     hit.HitNumber,
			Damage:        hit.Damage,
			Scaling:       hit.Scaling,
			ScaledDamage:  hit.ScaledDamage,
			TotalForCombo: hit.TotalForCombo,
			KaraCanceled:  hit.KaraCanceled,
		})
	}
	return out
}

func moveOutputFromEntry(entry catalog.Entry) MoveOutput {
	return MoveOutput{
		Character: entry.Character,
		MoveName:  entry.MoveName,
		AltNames:  append([]string{}, catalog.SplitNames(entry.AltNames)...),
		Damage:    entry.Damage,
	}
}
