package middleware

import "context"

type contextKey string

const (
	actorIDKey    contextKey = "actor_id"
	actorEmailKey contextKey = "actor_email"
)

// WithActor stores the authenticated actor resolved by AuthMiddleware.
// Handlers read it once and pass the id explicitly into the engines.
func WithActor(ctx context.Context, userID uint, email string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, userID)
	ctx = context.WithValue(ctx, actorEmailKey, email)
	return ctx
}

func ActorFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(actorIDKey).(uint)
	return id, ok
}

func ActorEmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(actorEmailKey).(string)
	return email
}
