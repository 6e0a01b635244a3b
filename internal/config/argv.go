package config

import (
	"fmt"
	"strings"
	"unicode"
)

// parseArgv splits a configured command string (clipboard, paste, probe
// commands) into an argv slice. Single and double quotes group words,
// backslash escapes the next rune, and a leading '#' disables the command.
// A blank or disabled command yields a nil argv.
func parseArgv(command string) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" || strings.HasPrefix(command, "#") {
		return nil, nil
	}

	var (
		argv    []string
		word    strings.Builder
		quoted  rune
		escaped bool
	)

	emit := func() {
		if word.Len() > 0 {
			argv = append(argv, word.String())
			word.Reset()
		}
	}

	for _, r := range command {
		if escaped {
			word.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if quoted != 0 {
			if r == quoted {
				quoted = 0
			} else {
				word.WriteRune(r)
			}
			continue
		}
		switch {
		case r == '\'' || r == '"':
			quoted = r
		case unicode.IsSpace(r):
			emit()
		default:
			word.WriteRune(r)
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence in command: %q", command)
	}
	if quoted != 0 {
		return nil, fmt.Errorf("unterminated quote in command: %q", command)
	}

	emit()
	return argv, nil
}

// mustParseArgv is for the built-in default commands, which are known good.
func mustParseArgv(command string) []string {
	argv, err := parseArgv(command)
	if err != nil {
		panic(err)
	}
	return argv
}
