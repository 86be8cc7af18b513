package factory

import (
	"sync"

	"github.com/to404hanga/ctf_platform_client/service/exporter"
	"github.com/to404hanga/ctf_platform_client/service/exporter/csv"
	"github.com/to404hanga/ctf_platform_client/service/exporter/xlsx"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type RankingExporterType string

const (
	CSVRankingExporter  RankingExporterType = "csv"
	XLSXRankingExporter RankingExporterType = "xlsx"
)

var ExporterSuffixMap = map[RankingExporterType]string{
	CSVRankingExporter:  ".csv",
	XLSXRankingExporter: ".xlsx",
}

type RankingExporterFactory struct {
	factory map[RankingExporterType]exporter.RankingExporter
	log     loggerv2.Logger
	mux     sync.RWMutex
}

func NewRankingExporterFactory(log loggerv2.Logger) *RankingExporterFactory {
	return &RankingExporterFactory{
		factory: make(map[RankingExporterType]exporter.RankingExporter), // 延迟创建
		log:     log,
	}
}

func (f *RankingExporterFactory) GetRankingExporter(exporterType RankingExporterType) exporter.RankingExporter {
	f.mux.RLock()
	if exp, exists := f.factory[exporterType]; exists {
		f.mux.RUnlock()
		return exp
	}
	f.mux.RUnlock()

	f.mux.Lock()
	defer f.mux.Unlock()

	// 双重检查，避免重复创建
	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVRankingExporter:
		f.factory[CSVRankingExporter] = csv.NewCSVRankingExporter(f.log)
		return f.factory[CSVRankingExporter]
	case XLSXRankingExporter:
		f.factory[XLSXRankingExporter] = xlsx.NewXLSXRankingExporter(f.log)
		return f.factory[XLSXRankingExporter]
	}

	return nil
}
