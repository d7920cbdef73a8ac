package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pup/internal/ast"
	"pup/internal/errors"
	"pup/internal/parser"
	"pup/internal/semantic"
)

var log = commonlog.GetLogger("pup.lsp")

// SemanticTokenTypes is the legend of token types, in wire order
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// SemanticTokenModifiers is the legend of modifier bits, in bit order
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// document is the last analysis of one open file. script is nil when the
// file does not parse; info is nil when it was never analyzed.
type document struct {
	content     string
	script      *ast.Script
	info        *semantic.Info
	diagnostics []protocol.Diagnostic
}

// PupHandler implements the LSP server handlers for pup scripts
type PupHandler struct {
	mu      sync.RWMutex
	docs    map[string]*document
	context *semantic.ContextRegistry
}

func NewPupHandler() *PupHandler {
	return &PupHandler{
		docs:    make(map[string]*document),
		context: semantic.NewContextRegistry(),
	}
}

// Initialize responds to the client's initialize request and advertises the server's capabilities
func (h *PupHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider:   ptrBool(false),
				TriggerCharacters: []string{"."},
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *PupHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *PupHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *PupHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *PupHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	doc := h.update(path, params.TextDocument.Text)
	publish(ctx, params.TextDocument.URI, doc.diagnostics)
	return nil
}

func (h *PupHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.docs, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentDidChange reanalyzes the document. The server asks for full
// sync, so the last change holds the whole text.
func (h *PupHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	var text *string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = &c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = &c.Text
		}
	}
	if text == nil {
		return nil
	}

	doc := h.update(path, *text)
	publish(ctx, params.TextDocument.URI, doc.diagnostics)
	return nil
}

// TextDocumentCompletion offers the script's own names and the API
// namespaces.
func (h *PupHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	var items []protocol.CompletionItem
	for _, name := range h.context.ModuleNames() {
		items = append(items, completion(name, protocol.CompletionItemKindModule))
	}

	h.mu.RLock()
	doc := h.docs[path]
	h.mu.RUnlock()
	if doc != nil && doc.script != nil {
		for _, v := range doc.script.Variables {
			items = append(items, completion(v.Name.Value, protocol.CompletionItemKindVariable))
		}
		for _, fn := range doc.script.Functions {
			items = append(items, completion(fn.Name.Value, protocol.CompletionItemKindFunction))
		}
		for _, s := range doc.script.Structs {
			items = append(items, completion(s.Name.Value, protocol.CompletionItemKindStruct))
		}
	}

	sortCompletions(items)
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *PupHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	doc, err := h.getOrLoad(ctx, path, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.script, doc.info)),
	}, nil
}

// getOrLoad returns the open document, reading it from disk when the
// client asks about a file it never opened.
func (h *PupHandler) getOrLoad(ctx *glsp.Context, path string, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc = h.update(path, string(content))
	publish(ctx, uri, doc.diagnostics)
	return doc, nil
}

// update analyzes content and stores the result. Every call runs its own
// analysis pass, so concurrent updates share no analyzer state.
func (h *PupHandler) update(path, content string) *document {
	doc := h.analyze(path, content)

	h.mu.Lock()
	h.docs[path] = doc
	h.mu.Unlock()
	return doc
}

func (h *PupHandler) analyze(path, content string) *document {
	doc := &document{content: content}

	script, err := parser.Parse(path, content)
	if err != nil {
		doc.diagnostics = ConvertCompilerErrors(asCompilerErrors(err))
		return doc
	}
	doc.script = script

	info, errs := semantic.NewAnalyzer(h.context).Analyze(script)
	doc.info = info
	all := append([]errors.CompilerError(nil), errs...)
	if info != nil {
		all = append(all, info.Warnings...)
	}
	doc.diagnostics = ConvertCompilerErrors(all)
	return doc
}

func asCompilerErrors(err error) []errors.CompilerError {
	if ce, ok := err.(errors.CompilerError); ok {
		return []errors.CompilerError{ce}
	}
	return []errors.CompilerError{{Level: errors.Error, Message: err.Error()}}
}

func completion(label string, kind protocol.CompletionItemKind) protocol.CompletionItem {
	return protocol.CompletionItem{Label: label, Kind: &kind}
}

// sortCompletions orders items by label for clients that do not sort.
func sortCompletions(items []protocol.CompletionItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })
}

// uriToPath converts a file URI to a platform-local path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

// publish sends the document's diagnostics. An empty list clears earlier ones.
func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
