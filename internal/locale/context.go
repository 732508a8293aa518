package locale

import "context"

type contextKey struct{}

// WithCode stores the render language on ctx. Unsupported codes are replaced
// by Primary so downstream readers never see an invalid value.
func WithCode(ctx context.Context, code Code) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, Normalize(string(code)))
}

// FromContext returns the language stored by WithCode.
func FromContext(ctx context.Context) (Code, bool) {
	if ctx == nil {
		return "", false
	}
	code, ok := ctx.Value(contextKey{}).(Code)
	return code, ok
}

// CodeOrDefault returns the context language, falling back to fallback and
// then Primary.
func CodeOrDefault(ctx context.Context, fallback Code) Code {
	if code, ok := FromContext(ctx); ok {
		return code
	}
	return Normalize(string(fallback))
}
