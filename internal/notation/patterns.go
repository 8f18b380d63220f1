package notation

import (
	"strconv"
	"strings"
)

// Grammars, all case-insensitive:
//
//	repeat     = base [ws] "x" [ws] count             (5HPx3, 5HP x 3)
//	follow-up  = base button sep{1,3} button [rest]   (214HP~P, 236K,K)
//	strength   = prefix ("l"|"m"|"h") button rest     (236MK~HK)
//	no-strength= prefix button link rest              (214K~K, 623Kx2)
//	motion     = ... motion [strength] button ...     (j236MK)
//
// where button is "p" or "k", sep is one of "~+, ", link is sep or "x" and
// count is 1 to MaxRepeat. Combo strings are split on whitespace before
// matching, so the spaced repeat form only reaches a single-move lookup.

// MaxRepeat is the largest repeat count SplitRepeat accepts.
const MaxRepeat = 99

const (
	followUpSeparators = "~+, \t"
	linkCharacters     = "~+, \txX"
	chainSeparators    = "~+,"
)

func isButton(b byte) bool {
	switch b {
	case 'p', 'P', 'k', 'K':
		return true
	}
	return false
}

func isStrength(b byte) bool {
	switch b {
	case 'l', 'L', 'm', 'M', 'h', 'H':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// SplitRepeat splits a trailing repeat count from token.
func SplitRepeat(token string) (string, int, bool) {
	s := strings.TrimRight(token, " \t")
	end := len(s)
	start := end
	for start > 0 && isDigit(s[start-1]) {
		start--
	}
	if start == end || end-start > 2 {
		return "", 0, false
	}
	count, err := strconv.Atoi(s[start:end])
	if err != nil || count < 1 || count > MaxRepeat {
		return "", 0, false
	}

	i := start
	if i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	if i == 0 || (s[i-1] != 'x' && s[i-1] != 'X') {
		return "", 0, false
	}
	i--
	if i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}

	base := strings.TrimSpace(s[:i])
	if base == "" {
		return "", 0, false
	}
	return base, count, true
}

// SplitFollowUp finds the last button that is chained to another button and
// returns the base move ending at it and the follow-up starting after the
// separators.
func SplitFollowUp(token string) (string, string, bool) {
	for i := len(token) - 1; i >= 1; i-- {
		if !isButton(token[i]) {
			continue
		}
		j := i + 1
		for j < len(token) && strings.IndexByte(followUpSeparators, token[j]) >= 0 {
			j++
		}
		run := j - i - 1
		if run < 1 || run > 3 || j >= len(token) || !isButton(token[j]) {
			continue
		}
		return token[:i+1], token[j:], true
	}
	return "", "", false
}

// SplitStrength finds the first strength+button pair. The strength-agnostic
// name is prefix + rest.
func SplitStrength(token string) (prefix string, strength byte, rest string, ok bool) {
	for i := 0; i+1 < len(token); i++ {
		if isStrength(token[i]) && isButton(token[i+1]) {
			return token[:i], token[i], token[i+1:], true
		}
	}
	return "", 0, "", false
}

// MissingStrength finds a button that has no strength letter in front of it
// and is followed by a link character. The button starts rest.
func MissingStrength(token string) (prefix string, rest string, ok bool) {
	for i := 1; i < len(token); i++ {
		if !isButton(token[i]) || isStrength(token[i-1]) {
			continue
		}
		if i+1 >= len(token) || strings.IndexByte(linkCharacters, token[i+1]) < 0 {
			continue
		}
		return token[:i], token[i:], true
	}
	return "", "", false
}

// WithStrength rebuilds a token found by MissingStrength.
func WithStrength(prefix string, strength byte, rest string) string {
	return prefix + string(strength) + rest
}

// MatchMotion reports whether token contains motion, an optional strength
// letter and then button.
func MatchMotion(token, motion, button string) bool {
	if motion == "" || button == "" {
		return false
	}
	lower := strings.ToLower(token)
	motion = strings.ToLower(motion)
	button = strings.ToLower(button)
	for offset := 0; offset < len(lower); {
		i := strings.Index(lower[offset:], motion)
		if i < 0 {
			return false
		}
		after := lower[offset+i+len(motion):]
		if len(after) > 0 && isStrength(after[0]) {
			after = after[1:]
		}
		if strings.HasPrefix(after, button) {
			return true
		}
		offset += i + 1
	}
	return false
}

// Presses counts how many times a chained or repeated input is pressed:
// the repeat count when present, otherwise one more than the number of
// chain separators.
func Presses(token string) int {
	if _, count, ok := SplitRepeat(token); ok {
		return count
	}
	presses := 1
	inRun := false
	for i := 0; i < len(token); i++ {
		if strings.IndexByte(chainSeparators, token[i]) >= 0 {
			if !inRun {
				presses++
			}
			inRun = true
			continue
		}
		inRun = false
	}
	return presses
}
