package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/instapreview/internal/logging"
)

// Guard runs fn at a host callback boundary. Errors and panics are logged and
// swallowed so a preview failure never breaks browsing. It reports whether fn
// completed without error.
func Guard(ctx context.Context, op string, fn func() error) (ok bool) {
	log := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Str("op", op).
				Str("panic", fmt.Sprint(r)).
				Msg("recovered panic in preview callback")
			ok = false
		}
	}()

	if err := fn(); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("preview callback failed")
		return false
	}
	return true
}
