package mcp

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// auditTool records a tool invocation on the server logger. Successful
// calls log at debug, failures at warn.
func (s *Server) auditTool(ctx context.Context, toolName string, start time.Time, err error, params map[string]any) {
	attrs := []slog.Attr{
		slog.String("tool", toolName),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	}
	if len(params) > 0 {
		attrs = append(attrs, slog.Group("params", paramAttrs(params)...))
	}

	level := slog.LevelDebug
	status := "success"
	if err != nil {
		level = slog.LevelWarn
		status = "error"
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	attrs = append(attrs, slog.String("status", status))

	s.logger.LogAttrs(ctx, level, "tool call", attrs...)
}

// paramAttrs converts params to attributes in key order. Unset optional
// inputs are dropped.
func paramAttrs(params map[string]any) []any {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := params[k]
		switch p := v.(type) {
		case *float64:
			if p == nil {
				continue
			}
			v = *p
		case *uint64:
			if p == nil {
				continue
			}
			v = *p
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
