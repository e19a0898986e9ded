package writer

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	pqwriter "github.com/xitongsys/parquet-go/writer"

	"revenueflow/logger"
	"revenueflow/models"
)

// DailyRevenueParquetFile mirrors DailyRevenueFile for lake-style consumers.
const DailyRevenueParquetFile = "daily_revenue.parquet"

// dailyRevenueRecord defines the parquet schema of the revenue summary.
type dailyRevenueRecord struct {
	OrderDate    string  `parquet:"name=order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalRevenue float64 `parquet:"name=total_revenue, type=DOUBLE"`
	OrdersCount  int32   `parquet:"name=orders_count, type=INT32"`
}

// WriteDailyRevenueParquet writes the revenue summary as a parquet file
// alongside the CSV when the parquet format is enabled.
func WriteDailyRevenueParquet(path string, rows []models.DailyRevenue, compression string) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	pw, err := pqwriter.NewParquetWriter(fw, new(dailyRevenueRecord), 1)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer for %s: %w", path, err)
	}
	pw.CompressionType = compressionCodec(compression)

	for _, r := range rows {
		rec := dailyRevenueRecord{
			OrderDate:    r.OrderDate.Format(dateLayout),
			TotalRevenue: r.TotalRevenue.InexactFloat64(),
			OrdersCount:  int32(r.OrdersCount),
		}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("write parquet row to %s: %w", path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logger.GetLogger().WithComponent("writer").WithFields(logger.Fields{
		"file": path,
		"rows": len(rows),
	}).Info("wrote parquet output file")
	return nil
}

func compressionCodec(name string) parquet.CompressionCodec {
	switch name {
	case "gzip":
		return parquet.CompressionCodec_GZIP
	case "none", "uncompressed":
		return parquet.CompressionCodec_UNCOMPRESSED
	default:
		return parquet.CompressionCodec_SNAPPY
	}
}
