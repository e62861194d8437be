// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestionDistance is the largest edit distance that still earns
// a did-you-mean suggestion.
const maxSuggestionDistance = 3

func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, 0, len(commands))
	for _, command := range commands {
		names = append(names, command.Name)
	}
	return closest(unknown, names)
}

// suggestFlag finds the first undefined flag in args and returns the
// closest defined one with its prefix, or "".
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if flagSet.Lookup(name) != nil {
			continue
		}
		if best := closest(name, defined); best != "" {
			return "--" + best
		}
		break
	}
	return ""
}

func closest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein(unknown, candidate); distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// levenshtein computes the edit distance between a and b using a
// single row of the distance matrix.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}
	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous = current
	}
	return previous[len(a)]
}
