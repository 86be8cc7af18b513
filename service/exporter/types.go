package exporter

import (
	"context"
	"io"

	"github.com/to404hanga/ctf_platform_client/model"
)

type RankingExporter interface {
	Export(ctx context.Context, canonical *model.CanonicalLeaderboard, writer io.Writer) error
}
