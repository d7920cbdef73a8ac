package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pup/internal/errors"
)

const diagnosticSource = "pup"

// ConvertCompilerErrors transforms compiler diagnostics into LSP diagnostics.
// Notes, suggestions and help text are appended to the message, since
// editors show them in the same hover.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		line := uint32(max(e.Position.Line-1, 0))
		start := uint32(max(e.Position.Column-1, 0))
		length := uint32(max(e.Length, 1))

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: start + length},
			},
			Severity: ptrSeverity(severity(e.Level)),
			Source:   ptrString(diagnosticSource),
			Message:  message(e),
		}
		if e.Code != "" {
			diagnostic.Code = &protocol.IntegerOrString{Value: e.Code}
		}
		diagnostics = append(diagnostics, diagnostic)
	}
	return diagnostics
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func message(e errors.CompilerError) string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, s := range e.Suggestions {
		b.WriteString("\nsuggestion: " + s.Message)
	}
	for _, n := range e.Notes {
		b.WriteString("\nnote: " + n)
	}
	if e.HelpText != "" {
		b.WriteString("\nhelp: " + e.HelpText)
	}
	return b.String()
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
