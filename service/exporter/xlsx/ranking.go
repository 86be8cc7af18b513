package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/service/exporter"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"
)

type XLSXRankingExporter struct {
	log loggerv2.Logger
}

var _ exporter.RankingExporter = (*XLSXRankingExporter)(nil)

func NewXLSXRankingExporter(log loggerv2.Logger) *XLSXRankingExporter {
	return &XLSXRankingExporter{
		log: log,
	}
}

func (e *XLSXRankingExporter) Export(ctx context.Context, canonical *model.CanonicalLeaderboard, writer io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	sheetName := "排名"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)

	if err = e.writeHeader(f, sheetName); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	currentRow := 2 // 从第二行开始写入数据（第一行是表头）
	for _, entry := range canonical.Entries {
		lastAt := ""
		if entry.LastSubmissionAt != nil {
			lastAt = *entry.LastSubmissionAt
		}
		rowData := []interface{}{
			entry.Rank,     // 排名
			entry.Username, // 用户名
			entry.Score,    // 得分
			entry.Solved,   // 解题数
			lastAt,         // 最近提交时间
		}

		for col, value := range rowData {
			cell, errCell := excelize.CoordinatesToCellName(col+1, currentRow)
			if errCell != nil {
				return fmt.Errorf("get cell name failed: %w", errCell)
			}
			if errCell = f.SetCellValue(sheetName, cell, value); errCell != nil {
				return fmt.Errorf("set cell value failed: %w", errCell)
			}
		}
		currentRow++
	}

	if err = f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

// writeHeader 写入Excel表头
func (e *XLSXRankingExporter) writeHeader(f *excelize.File, sheetName string) error {
	headers := []string{
		"排名",
		"用户名",
		"得分",
		"解题数",
		"最近提交时间",
	}

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	for col, header := range headers {
		cell, errCell := excelize.CoordinatesToCellName(col+1, 1)
		if errCell != nil {
			return fmt.Errorf("get cell name failed: %w", errCell)
		}
		if errCell = f.SetCellValue(sheetName, cell, header); errCell != nil {
			return fmt.Errorf("set header value failed: %w", errCell)
		}
		if errCell = f.SetCellStyle(sheetName, cell, cell, headerStyle); errCell != nil {
			return fmt.Errorf("set header style failed: %w", errCell)
		}
	}

	// 设置列宽
	columnWidths := map[string]float64{
		"A": 8,  // 排名
		"B": 20, // 用户名
		"C": 10, // 得分
		"D": 10, // 解题数
		"E": 24, // 最近提交时间
	}

	for col, width := range columnWidths {
		if err = f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	return nil
}
