// Package openai implements [ai.Provider] for OpenAI's Chat Completions API
// using Bearer authentication and the function-calling tool format.
package openai
