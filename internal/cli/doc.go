// Package cli renders rangeprod runs in a terminal: execution banners,
// spinner progress, comparison tables, results and result files. It also
// reads the interactive prompt input.
//
// Display* functions write to an io.Writer, Format* functions return
// strings and Write* functions write files.
package cli
