//go:build headless

package window

import (
	"context"

	"github.com/retroenv/retrochip8/internal/host"
)

// Available reports whether this build supports the window frontend.
const Available = false

// Run returns ErrUnavailable.
func Run(context.Context, *host.Runner, Options) error {
	return ErrUnavailable
}
