package interfaces

import "context"

// SubmissionGuard keeps a single in-flight submission per key. Acquire returns
// a token identifying the holder; Release only removes the lock while that
// token still holds it.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}
