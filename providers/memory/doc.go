// Package memory defines the conversation-history contract used by the
// agent loop and the dev server's thread store. The in-process default
// implementation lives in the inmemory subpackage.
package memory
