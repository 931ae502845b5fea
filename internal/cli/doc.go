// Package cli provides the interactive DiaryKeeper terminal front end.
//
// An App reads commands line by line, prompts for the fields each command
// needs and calls the user and diary services. Typical flow: register or
// log in, write entries, browse them by date, mood or search term, export
// single entries to text files, log out.
//
// The loop is started with App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command table.
package cli
