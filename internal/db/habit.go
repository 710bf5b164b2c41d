package db

import "time"

const (
	// FrequencyDaily 为聊天入口创建习惯时固定使用的频率
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Habit 定义了用户声明的周期性习惯
// Name 经过 Title Case 规范化，由唯一约束保证不重复
// 习惯与打卡记录之间没有外键，按名称精确匹配关联
type Habit struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	Frequency string `gorm:"not null;default:daily"`
	CreatedAt time.Time
}

// TableName 固定表名为 habits
func (Habit) TableName() string {
	return "habits"
}
