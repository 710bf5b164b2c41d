package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mindfulme/internal/db"
	"gorm.io/gorm"
)

// ErrNoActivities 在没有任何活动可导出时返回
var ErrNoActivities = errors.New("no activities to export")

// ExportHeader 是导出 CSV 的表头
var ExportHeader = []string{"Activity", "Date", "Category", "Status"}

// ExportService 将活动记录导出为 CSV
type ExportService struct {
	db *gorm.DB
}

// NewExportService 构造 ExportService
func NewExportService(gdb *gorm.DB) *ExportService {
	return &ExportService{db: gdb}
}

// ExportFileName 返回下载文件名，例如 MindfulMe_Logs_20240501.csv
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("MindfulMe_Logs_%s.csv", now.Format("20060102"))
}

// CSV 返回全部活动的 CSV 内容，无数据时返回 ErrNoActivities
func (s *ExportService) CSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteCSV(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV 将全部活动按日期倒序写入 w。
// 字段中的逗号与引号由 encoding/csv 转义，不会破坏行结构。
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	var activities []db.Activity
	if err := s.db.WithContext(ctx).
		Select("id", "name", "date", "category", "status").
		Order("date DESC, id ASC").
		Find(&activities).Error; err != nil {
		return fmt.Errorf("list activities for export: %w", err)
	}

	if len(activities) == 0 {
		return ErrNoActivities
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, activity := range activities {
		if err := writer.Write([]string{activity.Name, activity.Date, activity.Category, activity.Status}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
