package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Value records the candidate value under the key "value".
func Value(v any) slog.Attr {
	return slog.Any("value", v)
}

// Kind records a field kind under the key "kind".
// If kind is empty, it returns an empty Attr.
func Kind(kind string) slog.Attr {
	if kind == "" {
		return slog.Attr{}
	}
	return slog.String("kind", kind)
}

// Record records the position of a record in its input under the key "record".
func Record(index int) slog.Attr {
	return slog.Int("record", index)
}

// Path records a file path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
