// Package docoptgen compiles a docopt-style command-line usage description
// into a bison grammar, a flex scanner, and a C header that together
// implement the described grammar's parser.
//
// Ctx builds the intermediate representation from a stream of build events
// (see the internal/usage package for a ready-made front end reading a
// "Usage:" block, or internal/ir for the lower-level event interface
// directly). Driver then validates that representation and drives the three
// emitters in internal/gen/{header,scanner,grammar} to produce the output
// files.
package docoptgen
