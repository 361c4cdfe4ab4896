// Package soask answers technical questions from the command line. It finds
// the most relevant Stack Overflow question, collects its top-voted answers,
// cleans them to plain text, and streams a synthesized, simplified answer
// from a language model alongside the originals.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., stackexchange/, goquery/, openai/).
package soask
