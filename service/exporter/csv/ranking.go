package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/service/exporter"
	"github.com/to404hanga/pkg404/gotools/transform"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type CSVRankingExporter struct {
	log loggerv2.Logger
}

var _ exporter.RankingExporter = (*CSVRankingExporter)(nil)

func NewCSVRankingExporter(log loggerv2.Logger) *CSVRankingExporter {
	return &CSVRankingExporter{
		log: log,
	}
}

func (e *CSVRankingExporter) Export(ctx context.Context, canonical *model.CanonicalLeaderboard, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := e.writeHeader(csvWriter); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	records := transform.SliceFromSlice(canonical.Entries, func(idx int, entry model.LeaderboardEntry) []string {
		lastAt := ""
		if entry.LastSubmissionAt != nil {
			lastAt = *entry.LastSubmissionAt
		}
		return []string{
			strconv.Itoa(entry.Rank),    // 排名
			entry.Username,              // 用户名
			strconv.Itoa(entry.Score),   // 得分
			strconv.Itoa(entry.Solved),  // 解题数
			lastAt,                      // 最近提交时间
		}
	})
	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("write records failed: %w", err)
	}
	return nil
}

// writeHeader 写入 CSV 头部
func (e *CSVRankingExporter) writeHeader(csvWriter *csv.Writer) error {
	headers := []string{
		"排名",
		"用户名",
		"得分",
		"解题数",
		"最近提交时间",
	}
	return csvWriter.Write(headers)
}
