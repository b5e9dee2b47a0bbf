// Package openai implements the ai interfaces against OpenAI-compatible
// HTTP APIs via langchaingo. Any endpoint speaking the OpenAI wire format
// works, including local inference servers.
package openai
