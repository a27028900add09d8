package storages

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/configs"
	"github.com/reusee/stepviz/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

type SnapshotDB string

func (Module) SnapshotDB(
	loader configs.Loader,
) SnapshotDB {
	return configs.FirstOr[SnapshotDB](loader, "snapshot_db", "stepviz.db")
}

type OpenStore func(ctx context.Context) (*Store, error)

func (Module) OpenStore(
	path SnapshotDB,
	logger logs.Logger,
) OpenStore {
	return func(ctx context.Context) (*Store, error) {
		return Open(ctx, string(path), logger)
	}
}
