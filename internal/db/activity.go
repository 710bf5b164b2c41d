package db

import "time"

// DateLayout 是 activities.date 列使用的日期格式
const DateLayout = "2006-01-02"

const (
	DefaultActivityCategory = "general"
	DefaultActivityStatus   = "completed"
)

// Activity 记录一次完成的活动
// Name + Date 采用唯一索引，保证同一天同名活动只有一条记录
// Date 以 YYYY-MM-DD 字符串保存，导出与排序直接使用该列
type Activity struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;index;uniqueIndex:idx_activity_name_date"`
	Date      string `gorm:"not null;index;uniqueIndex:idx_activity_name_date"`
	Category  string `gorm:"default:general"`
	Status    string `gorm:"default:completed"`
	CreatedAt time.Time
}

// TableName 重写确保唯一索引作用到 name + date
func (Activity) TableName() string {
	return "activities"
}

// FormatDate 将时间截断为 activities.date 使用的日期字符串
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
