package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries per-request caller information extracted by transport middleware.
// Credential is the opaque session credential; it is verified by the service layer,
// never by middleware.
type RequestData struct {
	Credential string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
