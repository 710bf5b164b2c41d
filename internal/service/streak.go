package service

import (
	"time"

	"github.com/mindfulme/internal/db"
)

// maxStreakLookbackDays 限制向前回溯的天数，保证循环一定终止
const maxStreakLookbackDays = 365

// CalculateStreak 计算截至 today 的连续打卡天数。
// 今天已打卡计 1 天；今天未打卡不会中断昨天及之前的连续记录。
// 从昨天开始逐日回溯，遇到未打卡的日期或超过 365 天即停止。
func CalculateStreak(dates map[string]struct{}, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today = normalizeToDate(today)
	streak := 0
	if _, ok := dates[db.FormatDate(today)]; ok {
		streak = 1
	}

	limit := today.AddDate(0, 0, -maxStreakLookbackDays)
	for check := today.AddDate(0, 0, -1); !check.Before(limit); check = check.AddDate(0, 0, -1) {
		if _, ok := dates[db.FormatDate(check)]; !ok {
			break
		}
		streak++
	}

	return streak
}

// dateSet 将日期字符串列表转换为集合，重复日期自然去重
func dateSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		set[date] = struct{}{}
	}
	return set
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
