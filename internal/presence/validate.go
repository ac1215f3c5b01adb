// internal/presence/validate.go
package presence

import (
	"errors"
	"fmt"

	"github.com/tamzrod/activity-status/internal/jsonx"
)

var ErrMalformed = errors.New("presence: malformed payload")

// Validate checks an upstream body against the snapshot schema.
// It does not mutate or normalize the body; callers keep the raw bytes.
func Validate(body []byte) error {
	var env Envelope
	if err := jsonx.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !env.Success {
		return fmt.Errorf("%w: success is false", ErrMalformed)
	}
	if env.Data == nil {
		return fmt.Errorf("%w: data missing", ErrMalformed)
	}
	if env.Data.User.ID == "" {
		return fmt.Errorf("%w: discord_user.id missing", ErrMalformed)
	}
	if !KnownStatus(env.Data.Status) {
		return fmt.Errorf("%w: unknown discord_status %q", ErrMalformed, env.Data.Status)
	}
	return nil
}
