package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs a handler in the background with panic recovery. Dataset
// loads run through here so HTTP handlers can respond immediately while the
// fetch and aggregation continue.
//
// The handler gets a fresh background context carrying the caller's logger:
// the triggering HTTP request may finish (and its context cancel) long
// before the load completes.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := ctxlog.With(context.Background(), ctxlog.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(bgCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(bgCtx); err != nil {
			ctxlog.From(bgCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}
