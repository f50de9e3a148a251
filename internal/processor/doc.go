// Package processor implements the main ipacheck workflow: it validates
// transcriptions from arguments, batch files, standard input or word
// lookups, reports the results and optionally records them.
package processor
