// Package engine defines the boundary to the external text-generation
// backend. The Engine interface is deliberately tiny, one prompt in and one
// completion out, so vendor adapters stay interchangeable and the generator
// never couples to SDK types. Concrete adapters live in the openai and
// anthropic subpackages; MockEngine serves tests.
package engine
