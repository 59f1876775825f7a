// Package suite implements a small in-process test run lifecycle for checks whose cases are
// only known at runtime.
//
// A run goes through configure, collect, generate, execute and report:
//
//  1. Plugins registered on a Session may add command line options (OptionAdder) and adjust
//     the run configuration, including swapping the terminal reporter (Configurer).
//  2. Every Func is offered to the TestGenerator plugins through a Metafunc, which binds the
//     parameters the function requests. One Item is collected per parameter combination.
//  3. Items execute sequentially. Each body receives a *T, similar to *testing.T.
//  4. Every outcome becomes a Report, passed through the ReportMaker plugins and handed to the
//     single Reporter registered under TerminalReporterName.
package suite
