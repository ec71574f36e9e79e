// ABOUTME: Reserved command vocabulary matched before input reaches the model
// ABOUTME: The dispatch table is ordered; the first matching entry handles the input
package core

import (
	"context"
	"strings"
)

// HelpText lists the commands the session understands
const HelpText = `🍫 Available commands:
- 'add-document [path]': adds a document to the conversation context
- 'clear-context': clears the message history, keeping only my base knowledge
- 'reset': restarts the chat and the interaction counter (summarizes first if there were interactions)
- 'help': shows this list of commands
- 'chocolate': easter egg
- 'quit', 'exit', 'leave': ends the chat`

const documentUsage = "Tell me which file to add, for example: add-document ./docs/setup.md 🍫"

// QuitWords end the interactive loop; they are handled by the caller
var QuitWords = []string{"quit", "exit", "leave", "sair"}

// IsQuit reports whether text is one of the quit synonyms
func IsQuit(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, w := range QuitWords {
		if lowered == w {
			return true
		}
	}
	return false
}

// command is one entry of the dispatch table. match receives the trimmed
// input and returns the argument text when it applies.
type command struct {
	name   string
	match  func(trimmed string) (string, bool)
	handle func(s *Session, ctx context.Context, arg string) Reply
}

func commandTable() []command {
	return []command{
		{
			name:  "help",
			match: exact("help", "commands", "comandos"),
			handle: func(s *Session, _ context.Context, _ string) Reply {
				return Reply{Text: HelpText}
			},
		},
		{
			name:  "reset",
			match: exact("reset", "reiniciar"),
			handle: func(s *Session, _ context.Context, _ string) Reply {
				return Reply{Text: s.Reset()}
			},
		},
		{
			name:  "add-document",
			match: prefixed("add-document", "adicionar documento"),
			handle: func(s *Session, _ context.Context, arg string) Reply {
				return s.AddDocument(arg)
			},
		},
		{
			name:  "clear-context",
			match: exact("clear-context", "limpar contexto"),
			handle: func(s *Session, _ context.Context, _ string) Reply {
				return Reply{Text: s.ClearContext()}
			},
		},
		{
			name: "chocolate",
			match: func(trimmed string) (string, bool) {
				return "", trimmed == "chocolate"
			},
			handle: func(s *Session, _ context.Context, _ string) Reply {
				return s.Chocolate()
			},
		},
	}
}

// Commands returns the names of the reserved commands in dispatch order
func Commands() []string {
	table := commandTable()
	names := make([]string, 0, len(table))
	for _, c := range table {
		names = append(names, c.name)
	}
	return names
}

func (s *Session) match(trimmed string) (command, string, bool) {
	for _, c := range s.commands {
		if arg, ok := c.match(trimmed); ok {
			return c, arg, true
		}
	}
	return command{}, "", false
}

// exact matches any alias case-insensitively
func exact(aliases ...string) func(string) (string, bool) {
	return func(trimmed string) (string, bool) {
		for _, a := range aliases {
			if strings.EqualFold(trimmed, a) {
				return "", true
			}
		}
		return "", false
	}
}

// prefixed matches a keyword followed by whitespace and an argument, or the
// bare keyword. The argument keeps its original case.
func prefixed(keywords ...string) func(string) (string, bool) {
	return func(trimmed string) (string, bool) {
		for _, kw := range keywords {
			if len(trimmed) < len(kw) || !strings.EqualFold(trimmed[:len(kw)], kw) {
				continue
			}
			rest := trimmed[len(kw):]
			if rest == "" {
				return "", true
			}
			if rest[0] == ' ' || rest[0] == '\t' {
				return strings.TrimSpace(rest), true
			}
		}
		return "", false
	}
}
