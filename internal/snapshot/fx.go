package snapshot

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("snapshot",
	fx.Provide(NewLoader),
	fx.Provide(func(l *Loader) Provider { return l }),
	fx.Invoke(registerLoad),
)

func registerLoad(lc fx.Lifecycle, l *Loader) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return l.Load(ctx)
		},
	})
}
