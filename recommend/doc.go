// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package recommend produces personalized recommendations for a risk
// assessment using a language model, falling back to the fixed per-tier
// list whenever the model is unavailable, slow, or returns nothing usable.
//
// Providers implement [Provider]. [NewProvider] builds one from [Config]
// ("gemini", "openai", "mock", or "" for none).
package recommend
