// Package generator implements the content-generation pipeline: it turns a
// GenerationRequest into validated GeneratedContent by rendering the
// template prompt, invoking the generation engine for the base text, one
// platform-adapted variation per target platform (concurrently) and a
// performance estimate, then enforcing the template's format constraints.
//
// The generator is stateless apart from its immutable template registry and
// performs no retries; engine failures propagate unchanged to the caller.
package generator
