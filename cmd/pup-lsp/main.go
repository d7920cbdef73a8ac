// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pup/internal/lsp"
)

const lsName = "pup" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

var log = commonlog.GetLogger("pup.lsp.server")

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity, written to stderr")
	debug := flag.Bool("debug", false, "log every protocol message")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)

	pupHandler := lsp.NewPupHandler()

	handler = protocol.Handler{
		Initialize:                     pupHandler.Initialize,
		Initialized:                    pupHandler.Initialized,
		Shutdown:                       pupHandler.Shutdown,
		SetTrace:                       pupHandler.SetTrace,
		TextDocumentDidOpen:            pupHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           pupHandler.TextDocumentDidClose,
		TextDocumentDidChange:          pupHandler.TextDocumentDidChange,
		TextDocumentCompletion:         pupHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: pupHandler.TextDocumentSemanticTokensFull,
	}

	// debug enables glsp's own message logging
	s := server.NewServer(&handler, lsName, *debug)

	log.Infof("starting %s language server %s", lsName, version)

	// stdio is what most editors spawn language servers with
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
