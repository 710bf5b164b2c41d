package chat

import (
	"fmt"
	"strings"

	"github.com/mindfulme/internal/service"
)

// ExportRequest 是导出意图的哨兵回复，HTTP 层据此触发下载而不是展示文本
const ExportRequest = "export_request"

const (
	msgHabitNameTooShort = "Habit names should be descriptive. Please use at least 3 characters."
	msgNoHabits          = "You don't have any habits set up yet. Try '**add habit [name]**'."
	msgNoDailyHabits     = "You haven't set up any daily habits yet. Try adding one with '**add habit [name]**'!"
	msgAllClear          = "✅ **All Clear!** You haven't missed any of your daily habits in the last week!"
	msgGreeting          = "Hello! I'm **MindfulMe v2.0**, your Advanced Activity Analyzer. I track habits, calculate streaks, and validate your data. Type '**help**' for commands or '**export data**' to download your logs."

	// MsgFailure 在存储异常时返回给用户
	MsgFailure = "Sorry, something went wrong while handling your message. Please try again."
)

var msgHelp = strings.Join([]string{
	"I'm MindfulMe, here to help you build great habits!",
	"**Enhanced Commands:**",
	"1. **Log [activity name]** (e.g., 'log 1 hour of study')",
	"2. **Add habit [habit name]** (e.g., 'add habit drink 8 glasses of water')",
	"3. **Show habits** (Shows your habits and **streaks**!)",
	"4. **Check missed** (Analyzes the last week)",
	"5. **Export data** (Downloads your full log as a CSV file)",
}, "<br>")

// Greeting 返回聊天页面首次打开时展示的欢迎语
func Greeting() string {
	return msgGreeting
}

func formatLogResult(result *service.LogResult) string {
	name := result.Activity.Name
	if result.Duplicate {
		return fmt.Sprintf("Activity '**%s**' was already logged today. I've noted it, but no duplicate record was created.", name)
	}

	text := fmt.Sprintf("Activity '**%s**' logged for today. Well done! 🎉", name)
	if result.Streak > 1 {
		text += fmt.Sprintf("<br>🔥 **Streak Alert!** Your current streak for %s is **%d** days!", name, result.Streak)
	}
	return text
}

func formatHabitAdded(name, frequency string) string {
	return fmt.Sprintf("Habit '**%s**' added with a '%s' frequency. I'll keep track! 🗓️", name, frequency)
}

func formatHabitExists(name string) string {
	return fmt.Sprintf("Habit '**%s**' is already in your list. Try a different name.", name)
}

func formatDetailedHabits(items []service.HabitProgress) string {
	if len(items) == 0 {
		return msgNoHabits
	}

	var b strings.Builder
	b.WriteString("**Your current tracked habits and progress:**<br>")
	for _, item := range items {
		flame := ""
		if item.Streak > 1 {
			flame = "🔥"
		}
		fmt.Fprintf(&b, "- **%s** (%s) | Current Streak: **%d** days %s<br>", item.Habit.Name, item.Habit.Frequency, item.Streak, flame)
	}
	return b.String()
}

func formatMissedReport(report *service.MissedReport) string {
	if report.HabitCount == 0 {
		return msgNoDailyHabits
	}
	if report.AllClear() {
		return msgAllClear
	}

	lines := make([]string, 0, len(report.Missed)+1)
	lines = append(lines, fmt.Sprintf("**Analysis of Missed Daily Habits (Last %d Days):**", report.Days))
	for _, missed := range report.Missed {
		lines = append(lines, fmt.Sprintf("- Missed **'%s'** on %s.", missed.Habit, missed.Date))
	}
	return strings.Join(lines, "<br>")
}
