// Package requestctx carries per-request facts that outer middleware needs to read after inner
// middleware has filled them in.
package requestctx

import "context"

type ctxKey struct{}

// Info is shared by pointer so the access log sees the actor attached further down the chain.
type Info struct {
	RequestID string
	Actor     string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if info, ok := ctx.Value(ctxKey{}).(*Info); ok {
		info.RequestID = requestID
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, &Info{RequestID: requestID})
}

func GetRequestID(ctx context.Context) string {
	if info, ok := ctx.Value(ctxKey{}).(*Info); ok {
		return info.RequestID
	}
	return ""
}

// SetActor records the authenticated user. It is a no-op outside a request context.
func SetActor(ctx context.Context, userUUID string) {
	if info, ok := ctx.Value(ctxKey{}).(*Info); ok {
		info.Actor = userUUID
	}
}

func GetActor(ctx context.Context) string {
	if info, ok := ctx.Value(ctxKey{}).(*Info); ok {
		return info.Actor
	}
	return ""
}
