package scenes

import (
	"github.com/decker502/dropcatch/pkg/game"
)

// Scene is a type alias for game.Scene so scene implementations and the
// scene manager share one interface.
type Scene = game.Scene

var (
	_ Scene           = (*CatchScene)(nil)
	_ game.Disposable = (*CatchScene)(nil)
)
