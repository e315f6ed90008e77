package adapters

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"ifacecache/internal/types"
)

// ZerologDiagnostics emits every diagnostic kind as a structured
// zerolog warn-level event, logged under its exact diagnostic name.
type ZerologDiagnostics struct{}

func (ZerologDiagnostics) Diag(kind types.DiagKind, args ...any) {
	event := log.Warn().Str("diagnostic", kind.String())
	for i, arg := range args {
		event = event.Interface("arg"+strconv.Itoa(i), arg)
	}
	event.Msg(kind.String())
}
