package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pup/internal/lsp"
)

const playerScript = `extends Sprite2D
@expose var speed: float = 2.0
fn update(delta: float) {
	var step = speed * delta
	self.transform.position.x += step
	print(Time.get_delta())
}
`

// recorder captures the notifications a handler sends.
type recorder struct {
	diagnostics map[string][]protocol.Diagnostic
}

func newContext() (*glsp.Context, *recorder) {
	r := &recorder{diagnostics: make(map[string][]protocol.Diagnostic)}
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok && method == protocol.ServerTextDocumentPublishDiagnostics {
				r.diagnostics[p.URI] = p.Diagnostics
			}
		},
	}
	return ctx, r
}

func uriFor(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(path)
}

func open(t *testing.T, h *lsp.PupHandler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	require.NoError(t, h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "pup", Version: 1, Text: text},
	}))
}

func TestDiagnosticsOnOpenAndChange(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, rec := newContext()
	uri := uriFor(t, "bob.pup")

	open(t, h, ctx, uri, "extends Node\nfn init() {\n\tjump()\n}\n")
	diags := rec.diagnostics[uri]
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(2), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Character)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Equal(t, "E0002", diags[0].Code.Value)
	assert.Contains(t, diags[0].Message, "jump")

	require.NoError(t, h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: playerScript}},
	}))
	assert.Empty(t, rec.diagnostics[uri], "fixing the script clears its diagnostics")
}

func TestSyntaxErrorDiagnostic(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, rec := newContext()
	uri := uriFor(t, "broken.pup")

	open(t, h, ctx, uri, "extends Node\nvar = 1\n")
	diags := rec.diagnostics[uri]
	require.Len(t, diags, 1)
	assert.Equal(t, "E0100", diags[0].Code.Value)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)

	// no tree, no tokens, no failure
	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, _ := newContext()
	uri := uriFor(t, "player.pup")
	open(t, h, ctx, uri, playerScript)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	want := []struct {
		line, char, length uint32
		typ                string
		mods               []string
	}{
		{1, 9, 8, "type", nil},
		{2, 1, 7, "modifier", nil},
		{2, 13, 5, "variable", []string{"declaration"}},
		{2, 20, 5, "type", nil},
		{3, 4, 6, "function", []string{"declaration"}},
		{3, 11, 5, "parameter", []string{"declaration"}},
		{3, 18, 5, "type", nil},
		{4, 6, 4, "variable", []string{"declaration"}},
		{4, 13, 5, "variable", nil},
		{4, 21, 5, "parameter", nil},
		{5, 2, 4, "keyword", nil},
		{5, 7, 9, "property", nil},
		{5, 17, 8, "property", nil},
		{5, 26, 1, "property", nil},
		{5, 31, 4, "variable", nil},
		{6, 2, 5, "function", nil},
		{6, 8, 4, "namespace", nil},
		{6, 13, 9, "function", nil},
	}
	require.Len(t, decoded, len(want))
	for i, w := range want {
		assertToken(t, &decoded[i], w.line, w.char, w.length, w.typ, w.mods)
	}
}

func TestSemanticTokensFromDisk(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, rec := newContext()

	path := filepath.Join(t.TempDir(), "disk.pup")
	require.NoError(t, os.WriteFile(path, []byte(playerScript), 0o644))
	uri := "file://" + filepath.ToSlash(path)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Data)
	assert.Contains(t, rec.diagnostics, uri)

	_, err = h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri + ".missing"},
	})
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, _ := newContext()
	uri := uriFor(t, "player.pup")
	open(t, h, ctx, uri, playerScript)

	result, err := h.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list := result.(*protocol.CompletionList)
	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "speed")
	assert.Contains(t, labels, "update")
	assert.Contains(t, labels, "Time")
	assert.IsNonDecreasing(t, labels)
}

func TestDidClose(t *testing.T) {
	h := lsp.NewPupHandler()
	ctx, _ := newContext()
	uri := uriFor(t, "gone.pup")
	open(t, h, ctx, uri, playerScript)

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	// closed and not on disk
	_, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (token %d)", token.Index)
	require.Equal(t, expectedChar, token.Char, "char mismatch (token %d)", token.Index)
	require.Equal(t, expectedLength, token.Length, "length mismatch (token %d)", token.Index)
	require.Equal(t, expectedType, token.Type, "type mismatch (token %d)", token.Index)
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch (token %d)", token.Index)
}
