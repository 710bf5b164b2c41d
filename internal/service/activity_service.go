package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindfulme/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActivityNameRequired 在活动名称为空时返回
var ErrActivityNameRequired = errors.New("activity name is required")

// ActivityService 负责活动打卡与连续天数统计
type ActivityService struct {
	db  *gorm.DB
	now func() time.Time
}

// LogResult 描述一次打卡的结果
// Duplicate 为 true 时表示今天已经记录过，没有新建记录
type LogResult struct {
	Activity  db.Activity
	Duplicate bool
	Streak    int
}

// ActivityFilter 描述活动列表过滤条件
type ActivityFilter struct {
	Name  string
	Limit int
}

// NewActivityService 构造 ActivityService
func NewActivityService(gdb *gorm.DB) *ActivityService {
	return &ActivityService{db: gdb, now: time.Now}
}

// SetClock 替换获取当前时间的函数，主要用于测试
func (s *ActivityService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Today 返回当前日历日的零点
func (s *ActivityService) Today() time.Time {
	return normalizeToDate(s.now())
}

// Log 以今天的日期记录一次活动。
// 同名同日的记录由唯一索引拦截，冲突时不修改数据并返回已有记录。
func (s *ActivityService) Log(ctx context.Context, name string) (*LogResult, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrActivityNameRequired
	}

	today := db.FormatDate(s.Today())
	record := db.Activity{
		Name:     name,
		Date:     today,
		Category: db.DefaultActivityCategory,
		Status:   db.DefaultActivityStatus,
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&record)
	if res.Error != nil {
		return nil, fmt.Errorf("log activity: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var existing db.Activity
		if err := s.db.WithContext(ctx).Where("name = ? AND date = ?", name, today).First(&existing).Error; err != nil {
			return nil, fmt.Errorf("reload activity: %w", err)
		}
		streak, err := s.Streak(ctx, name)
		if err != nil {
			return nil, err
		}
		return &LogResult{Activity: existing, Duplicate: true, Streak: streak}, nil
	}

	streak, err := s.Streak(ctx, name)
	if err != nil {
		return nil, err
	}

	return &LogResult{Activity: record, Streak: streak}, nil
}

// Exists 判断指定名称在某天是否已有记录
func (s *ActivityService) Exists(ctx context.Context, name string, date time.Time) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Activity{}).
		Where("name = ? AND date = ?", NormalizeName(name), db.FormatDate(date)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check activity: %w", err)
	}
	return count > 0, nil
}

// Dates 返回指定名称的全部打卡日期，按日期倒序
func (s *ActivityService) Dates(ctx context.Context, name string) ([]string, error) {
	var dates []string
	if err := s.db.WithContext(ctx).Model(&db.Activity{}).
		Where("name = ?", NormalizeName(name)).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("list activity dates: %w", err)
	}
	return dates, nil
}

// Streak 计算指定名称当前的连续打卡天数
func (s *ActivityService) Streak(ctx context.Context, name string) (int, error) {
	dates, err := s.Dates(ctx, name)
	if err != nil {
		return 0, err
	}
	return CalculateStreak(dateSet(dates), s.Today()), nil
}

// List 返回活动记录，按日期倒序
func (s *ActivityService) List(ctx context.Context, filter ActivityFilter) ([]db.Activity, error) {
	var activities []db.Activity

	query := s.db.WithContext(ctx).Model(&db.Activity{})
	if name := NormalizeName(filter.Name); name != "" {
		query = query.Where("name = ?", name)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("date DESC, id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
