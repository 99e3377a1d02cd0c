// Package shellcmd lexes, parses and expands a configured command string
// into an argv ready to hand to os/exec, without ever executing it itself.
// A command may reference the currently selected file, the flagged set, or
// the clipboard through a handful of "%x" placeholders; everything else
// passes through untouched.
package shellcmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// SameWindowToken marks a command meant to take over the current terminal
// (an in-window program) rather than being wrapped for a subshell. It must
// be the first token of the command if present at all.
const SameWindowToken = "%t"

// Environment supplies the values a "%x" expansion resolves to. Nothing in
// this package calls back into session state beyond these accessors.
type Environment interface {
	SelectedPath() string
	SelectedFilename() string
	SelectedExtension() string
	CurrentDirectory() string
	FlaggedPaths() []string
}

// Parse lexes, parses and expands command against env, returning the argv
// an executor should run. Errors are lex failures or unknown "%x"
// expansions; the caller is expected to log them and show them to the user
// without running anything.
func Parse(command string, env Environment) ([]string, error) {
	tokens, err := lex(command)
	if err != nil {
		return nil, fmt.Errorf("syntax error in %q: %w", command, err)
	}
	parts, err := parseTokens(tokens, env)
	if err != nil {
		return nil, fmt.Errorf("couldn't expand %q: %w", command, err)
	}
	return buildArgs(parts)
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenStringLiteral
	tokenExpansion
)

type token struct {
	kind  tokenKind
	quote rune   // set when kind == tokenStringLiteral
	text  string // identifier text, literal body, or single expansion letter
}

type lexState int

const (
	stateStart lexState = iota
	stateArg
	stateStringLiteral
	stateFmExpansion
)

// lex tokenizes command into identifiers, quoted literals and "%x"
// expansions. Quotes toggle a literal mode that disables further splitting
// until the matching quote closes it.
func lex(command string) ([]token, error) {
	command = strings.TrimSpace(command)
	var tokens []token
	state := stateStart
	var quote rune
	var current strings.Builder

	for _, c := range command {
		switch state {
		case stateStart:
			switch {
			case c == '"' || c == '\'':
				quote = c
				state = stateStringLiteral
			case c == '%':
				state = stateFmExpansion
			default:
				current.WriteRune(c)
				state = stateArg
			}
		case stateArg:
			switch {
			case c == '%':
				tokens = append(tokens, token{kind: tokenIdentifier, text: current.String()})
				current.Reset()
				state = stateFmExpansion
			case c == '"' || c == '\'':
				tokens = append(tokens, token{kind: tokenIdentifier, text: current.String()})
				current.Reset()
				quote = c
				state = stateStringLiteral
			default:
				current.WriteRune(c)
			}
		case stateStringLiteral:
			if c == quote {
				tokens = append(tokens, token{kind: tokenStringLiteral, quote: quote, text: current.String()})
				current.Reset()
				state = stateStart
			} else {
				current.WriteRune(c)
			}
		case stateFmExpansion:
			if !isExpansionLetter(c) {
				return nil, fmt.Errorf("invalid expansion %%%c", c)
			}
			if c == 't' && len(tokens) != 0 {
				return nil, fmt.Errorf("%%t must be the first token")
			}
			tokens = append(tokens, token{kind: tokenExpansion, text: string(c)})
			current.Reset()
			state = stateStart
		}
	}

	switch state {
	case stateArg:
		tokens = append(tokens, token{kind: tokenIdentifier, text: current.String()})
	case stateStringLiteral:
		tokens = append(tokens, token{kind: tokenStringLiteral, quote: quote, text: current.String()})
	case stateFmExpansion:
		return nil, fmt.Errorf("dangling %% at end of command")
	case stateStart:
	}
	return tokens, nil
}

func isExpansionLetter(c rune) bool {
	switch c {
	case 's', 'n', 'd', 'e', 'f', 't', 'c':
		return true
	default:
		return false
	}
}

// parseTokens resolves every token to one or more argv fragments, in order.
// A StringLiteral fragment keeps its surrounding quotes so later whitespace
// splitting in buildArgs doesn't break it apart.
func parseTokens(tokens []token, env Environment) ([]string, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	var parts []string
	for _, tok := range tokens {
		switch tok.kind {
		case tokenIdentifier:
			parts = append(parts, tok.text)
		case tokenStringLiteral:
			parts = append(parts, string(tok.quote)+tok.text+string(tok.quote))
		case tokenExpansion:
			expanded, err := expand(tok.text, env)
			if err != nil {
				return nil, err
			}
			parts = append(parts, expanded...)
		}
	}
	return parts, nil
}

func expand(letter string, env Environment) ([]string, error) {
	switch letter {
	case "s":
		return []string{env.SelectedPath()}, nil
	case "n":
		return []string{quoteIfNeeded(env.SelectedFilename())}, nil
	case "d":
		return []string{env.CurrentDirectory()}, nil
	case "e":
		return []string{env.SelectedExtension()}, nil
	case "f":
		paths := env.FlaggedPaths()
		quoted := make([]string, len(paths))
		for i, p := range paths {
			quoted[i] = quoteIfNeeded(p)
		}
		return []string{strings.Join(quoted, " ")}, nil
	case "t":
		return []string{SameWindowToken}, nil
	case "c":
		text, err := clipboard.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("couldn't read clipboard: %w", err)
		}
		return strings.Fields(text), nil
	default:
		return nil, fmt.Errorf("invalid expansion %%%s", letter)
	}
}

// quoteIfNeeded wraps a value in double quotes if it contains whitespace, so
// a rejoined shell command keeps it as one argument.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// buildArgs turns the resolved parts into the final argv, following the
// same three rules as the lexer/parser pipeline they came from: a sudo
// command is rejoined and re-split on whitespace (no shell wrapping, since
// sudo execs its argument directly); an in-window command is passed through
// unwrapped; everything else is handed to "sh -c" so redirection and pipes
// work.
func buildArgs(parts []string) ([]string, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	switch {
	case strings.HasPrefix(parts[0], "sudo"):
		return strings.Fields(strings.Join(parts, "")), nil
	case strings.HasPrefix(parts[0], SameWindowToken):
		return parts, nil
	default:
		return []string{"sh", "-c", strings.Join(parts, "")}, nil
	}
}
