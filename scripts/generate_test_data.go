package main

import (
	"fmt"
	"log"
	"time"

	"github.com/mindfulme/internal/config"
	"github.com/mindfulme/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// demoHabit 描述演示数据中的一个习惯及其打卡节奏
// every=1 表示每天打卡，every=3 表示每 3 天漏打一次
type demoHabit struct {
	Name      string
	Frequency string
	every     int
}

var demoHabits = []demoHabit{
	{Name: "Meditate", Frequency: db.FrequencyDaily, every: 1},
	{Name: "Drink Water", Frequency: db.FrequencyDaily, every: 3},
	{Name: "Read 20 Pages", Frequency: db.FrequencyDaily, every: 4},
	{Name: "Call Family", Frequency: db.FrequencyWeekly, every: 0},
}

// 测试数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	fmt.Println("开始生成测试数据...")

	habits, activities, err := seedDemoData(gdb, time.Now(), 30)
	if err != nil {
		log.Fatal("生成测试数据失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("习惯: %d 个\n", habits)
	fmt.Printf("打卡: %d 条（最近 30 天）\n", activities)
}

// seedDemoData 写入演示习惯与最近 days 天的打卡记录，重复执行不会产生重复数据
func seedDemoData(gdb *gorm.DB, today time.Time, days int) (int, int, error) {
	habitCount := 0
	activityCount := 0

	for _, item := range demoHabits {
		habit := db.Habit{Name: item.Name, Frequency: item.Frequency}
		res := gdb.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&habit)
		if res.Error != nil {
			return 0, 0, fmt.Errorf("create habit %s: %w", item.Name, res.Error)
		}
		habitCount += int(res.RowsAffected)

		if item.every == 0 {
			continue
		}

		for offset := 0; offset < days; offset++ {
			// 每 every 天跳过一天，制造漏打卡；every=1 时每天都打卡
			if item.every > 1 && offset%item.every == item.every-1 {
				continue
			}
			activity := db.Activity{
				Name:     item.Name,
				Date:     db.FormatDate(today.AddDate(0, 0, -offset)),
				Category: db.DefaultActivityCategory,
				Status:   db.DefaultActivityStatus,
			}
			res := gdb.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}, {Name: "date"}},
				DoNothing: true,
			}).Create(&activity)
			if res.Error != nil {
				return 0, 0, fmt.Errorf("create activity %s: %w", item.Name, res.Error)
			}
			activityCount += int(res.RowsAffected)
		}
	}

	fmt.Println("✅ 演示习惯与打卡记录创建完成")
	return habitCount, activityCount, nil
}
