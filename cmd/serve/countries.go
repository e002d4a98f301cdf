package serve

import (
	"log/slog"
	"time"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/egp"
	"github.com/sig-0/usdreport/provider/iqd"
	"github.com/sig-0/usdreport/provider/jod"
	"github.com/sig-0/usdreport/provider/lbp"
	"github.com/sig-0/usdreport/provider/syp"
)

// Per-strategy fetch timeout. Central bank pages can be slow, so this
// leans generous; a chain with five strategies still resolves within
// a couple of minutes in the worst case
const fetchTimeout = time.Second * 15

// DefaultRegistry returns the registry of all supported countries
func DefaultRegistry(logger *slog.Logger) *provider.Registry {
	opts := []provider.ChainOption{
		provider.WithLogger(logger),
	}

	return provider.NewRegistry(
		egp.NewChain(fetchTimeout, opts...),
		iqd.NewChain(fetchTimeout, opts...),
		jod.NewChain(fetchTimeout, opts...),
		syp.NewChain(fetchTimeout, opts...),
		lbp.NewChain(fetchTimeout, opts...),
	)
}
