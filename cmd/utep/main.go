// Package main provides the entry point for the utep CLI.
//
// utep runs the simulate-then-fit analyses of the unified theory
// experimental program: the LHC dijet resonance search, the femtosecond
// pump-probe correlation measurement, and the high-resolution infrared
// absorption search.
//
// Usage:
//
//	utep dijet
//	utep all --seed 7
//
// See --help for all available options.
package main

// main is the entry point for utep.
func main() {
	Execute()
}
