package realip

import (
	"fmt"
	"net/textproto"
	"reflect"
	"strings"
)

func (c *config) validate() error {
	if len(c.headerRules) == 0 && !c.peerFallback {
		return fmt.Errorf("at least one header rule or peer fallback required")
	}

	if err := c.validateHeaderRules(); err != nil {
		return err
	}

	if isNilLogger(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if isNilMetrics(c.metrics) {
		return fmt.Errorf("metrics cannot be nil")
	}
	return nil
}

func (c *config) validateHeaderRules() error {
	seen := make(map[string]struct{}, len(c.headerRules))

	for _, rule := range c.headerRules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("header names cannot be empty")
		}
		if name != rule.Name || strings.ContainsAny(name, " \t:") {
			return fmt.Errorf("invalid header name %q", rule.Name)
		}

		key := textproto.CanonicalMIMEHeaderKey(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate header %q in precedence table", rule.Name)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func isNilLogger(logger Logger) bool {
	return isNilInterface(logger)
}

func isNilMetrics(metrics Metrics) bool {
	return isNilInterface(metrics)
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
