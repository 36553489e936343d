// Package document ties layout and rendering together and hands the result to
// a Saver. A Generator owns one layout engine and one renderer; each call to
// Generate produces an Artifact with its own document id.
package document
