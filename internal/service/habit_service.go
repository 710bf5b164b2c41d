package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mindfulme/internal/db"
	"gorm.io/gorm"
)

// MinHabitNameLength 习惯名称的最少字符数
const MinHabitNameLength = 3

// DefaultMissedWindowDays 漏打卡分析默认回看的天数
const DefaultMissedWindowDays = 7

var (
	// ErrHabitNameTooShort 在习惯名称少于 3 个字符时返回
	ErrHabitNameTooShort = errors.New("habit name too short")
	// ErrHabitExists 在习惯名称已存在时返回
	ErrHabitExists = errors.New("habit already exists")
	// ErrHabitInvalidFrequency 当频率配置异常时返回
	ErrHabitInvalidFrequency = errors.New("invalid habit frequency")
)

// HabitService 负责习惯的创建、列表与漏打卡分析
// 连续天数与打卡查询委托给 ActivityService
type HabitService struct {
	db         *gorm.DB
	activities *ActivityService
}

// HabitProgress 为习惯附带当前连续天数
type HabitProgress struct {
	Habit  db.Habit
	Streak int
}

// MissedDay 表示某个每日习惯在某天没有打卡
type MissedDay struct {
	Habit string
	Date  string
}

// MissedReport 汇总漏打卡分析结果
type MissedReport struct {
	HabitCount int
	Days       int
	Missed     []MissedDay
}

// AllClear 表示窗口内没有任何漏打卡
func (r *MissedReport) AllClear() bool {
	return r.HabitCount > 0 && len(r.Missed) == 0
}

// NewHabitService 构造 HabitService
func NewHabitService(gdb *gorm.DB, activities *ActivityService) *HabitService {
	return &HabitService{db: gdb, activities: activities}
}

// Add 新建习惯，frequency 为空时使用 daily
func (s *HabitService) Add(ctx context.Context, name, frequency string) (*db.Habit, error) {
	name = NormalizeName(name)
	if utf8.RuneCountInString(name) < MinHabitNameLength {
		return nil, ErrHabitNameTooShort
	}

	unit, err := normalizeFrequency(frequency)
	if err != nil {
		return nil, err
	}

	habit := db.Habit{Name: name, Frequency: unit}
	if err := s.db.WithContext(ctx).Create(&habit).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrHabitExists, name)
		}
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// List 返回全部习惯，按创建顺序排列
func (s *HabitService) List(ctx context.Context) ([]db.Habit, error) {
	var habits []db.Habit
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// Detailed 返回全部习惯及其实时计算的连续天数
func (s *HabitService) Detailed(ctx context.Context) ([]HabitProgress, error) {
	habits, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]HabitProgress, 0, len(habits))
	for _, habit := range habits {
		streak, err := s.activities.Streak(ctx, habit.Name)
		if err != nil {
			return nil, err
		}
		items = append(items, HabitProgress{Habit: habit, Streak: streak})
	}
	return items, nil
}

// Missed 检查每个每日习惯在过去 days 天（不含今天）内缺失的打卡日期。
// 结果按习惯创建顺序排列，同一习惯内从昨天开始向前。
func (s *HabitService) Missed(ctx context.Context, days int) (*MissedReport, error) {
	if days <= 0 {
		days = DefaultMissedWindowDays
	}

	var habits []db.Habit
	if err := s.db.WithContext(ctx).
		Where("frequency = ?", db.FrequencyDaily).
		Order("id ASC").
		Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list daily habits: %w", err)
	}

	report := &MissedReport{HabitCount: len(habits), Days: days}
	if len(habits) == 0 {
		return report, nil
	}

	today := s.activities.Today()
	start := db.FormatDate(today.AddDate(0, 0, -days))
	end := db.FormatDate(today.AddDate(0, 0, -1))

	names := make([]string, 0, len(habits))
	for _, habit := range habits {
		names = append(names, habit.Name)
	}

	var logged []db.Activity
	if err := s.db.WithContext(ctx).
		Select("name", "date").
		Where("name IN ?", names).
		Where("date BETWEEN ? AND ?", start, end).
		Find(&logged).Error; err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}

	seen := make(map[string]struct{}, len(logged))
	for _, activity := range logged {
		seen[activity.Name+"|"+activity.Date] = struct{}{}
	}

	for _, habit := range habits {
		for i := 1; i <= days; i++ {
			date := db.FormatDate(today.AddDate(0, 0, -i))
			if _, ok := seen[habit.Name+"|"+date]; ok {
				continue
			}
			report.Missed = append(report.Missed, MissedDay{Habit: habit.Name, Date: date})
		}
	}

	return report, nil
}

func normalizeFrequency(frequency string) (string, error) {
	unit := strings.ToLower(strings.TrimSpace(frequency))
	if unit == "" {
		return db.FrequencyDaily, nil
	}

	switch unit {
	case db.FrequencyDaily, db.FrequencyWeekly, db.FrequencyMonthly:
		return unit, nil
	default:
		return "", fmt.Errorf("%w: unsupported unit %s", ErrHabitInvalidFrequency, frequency)
	}
}
