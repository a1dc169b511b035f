package fonts

import (
	"context"
	"io/fs"
)

// Source fetches font program bytes by path. Implementations may hit the
// filesystem, an embedded archive or a remote store; the manager treats
// every failure the same way and moves down the fallback chain.
type Source interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// DirSource serves font programs from a file tree.
func DirSource(fsys fs.FS) Source { return dirSource{fsys: fsys} }

type dirSource struct{ fsys fs.FS }

func (d dirSource) Load(_ context.Context, path string) ([]byte, error) {
	return fs.ReadFile(d.fsys, path)
}
