package realip

import (
	"fmt"
	"net/http"
)

// Resolver determines the real client address of HTTP requests from a fixed
// header precedence table, falling back to the transport peer address.
//
// Resolver instances are immutable after New and safe for concurrent use.
type Resolver struct {
	config *config
	rules  []compiledRule
}

// New creates a Resolver from one or more Option builders.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return newResolver(cfg), nil
}

func newResolver(cfg *config) *Resolver {
	return &Resolver{
		config: cfg,
		rules:  compileHeaderRules(cfg.headerRules),
	}
}

var defaultResolver = newResolver(defaultConfig())

// Default returns the Resolver used by the package-level functions. It uses
// the default header precedence table with peer fallback and no logging or
// metrics.
func Default() *Resolver {
	return defaultResolver
}

// Resolve determines the client address of r.
//
// Headers are consulted in precedence order and the first one that parses
// wins; malformed values are skipped. When no header yields an address, the
// peer address in r.RemoteAddr is used if peer fallback is enabled. The
// request context cache is not consulted.
func (res *Resolver) Resolve(r *http.Request) (Resolution, bool) {
	if r == nil {
		res.config.metrics.RecordResolutionFailure()
		return Resolution{}, false
	}

	return res.resolve(httpHeaderLookup(r.Header), r.RemoteAddr)
}

// ResolveFrom determines the client address from framework-agnostic request
// input. It follows the same rules as Resolve.
func (res *Resolver) ResolveFrom(input RequestInput) (Resolution, bool) {
	return res.resolve(inputHeaderLookup(input.Headers), input.RemoteAddr)
}

func (res *Resolver) resolve(lookup headerLookup, remoteAddr string) (Resolution, bool) {
	for _, rule := range res.rules {
		value := lookup(rule.key)
		if value == "" {
			continue
		}

		addr, ok := parseHeaderValue(value, rule.allowPort)
		if !ok {
			continue
		}

		res.config.metrics.RecordResolutionSuccess(rule.sourceName)
		return Resolution{IP: RealIP{addr: addr}, Source: rule.sourceName}, true
	}

	if res.config.peerFallback {
		if addr, ok := parseRemoteAddr(remoteAddr); ok {
			res.config.metrics.RecordResolutionSuccess(SourceRemoteAddr)
			return Resolution{IP: RealIP{addr: addr}, Source: SourceRemoteAddr}, true
		}
	}

	res.config.metrics.RecordResolutionFailure()
	return Resolution{}, false
}

// HeaderRules returns a copy of the precedence table used by res.
func (res *Resolver) HeaderRules() []HeaderRule {
	return cloneHeaderRules(res.config.headerRules)
}
