// Package reactagent wires a ready-to-run tool-calling agent: it picks the
// LLM provider from the model name, registers the default tool set, and
// returns a prebuilt [react.Agent].
//
// The zero-configuration path needs only a vendor API key in the
// environment:
//
//	agent, err := reactagent.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	response, err := agent.Execute(ctx, "What is the weather in SF?")
//
// Model names starting with "claude" route to Anthropic's Messages API and
// names starting with "gpt" route to OpenAI's Chat Completions API. Use
// [WithProvider] to plug in any other [ai.Provider] implementation.
package reactagent
