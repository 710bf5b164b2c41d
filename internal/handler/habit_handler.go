package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulme/internal/db"
	"github.com/mindfulme/internal/service"
)

const (
	defaultActivityLimit = 100
	maxActivityLimit     = 1000
	maxMissedWindowDays  = 31
)

type habitPayload struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
}

type activityPayload struct {
	Name string `json:"name"`
}

// ListHabits 返回全部习惯及当前连续天数
func (a *API) ListHabits(c *gin.Context) {
	items, err := a.habits.Detailed(c.Request.Context())
	if err != nil {
		a.internalError(c, "list habits", err, "failed to list habits")
		return
	}

	habits := make([]gin.H, 0, len(items))
	for _, item := range items {
		payload := habitToPayload(item.Habit)
		payload["streak"] = item.Streak
		habits = append(habits, payload)
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// CreateHabit 创建习惯，frequency 缺省为 daily
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "invalid request payload") {
		return
	}

	habit, err := a.habits.Add(c.Request.Context(), payload.Name, payload.Frequency)
	if err != nil {
		a.handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"habit": habitToPayload(*habit)})
}

// MissedHabits 返回每日习惯在最近 N 天内的漏打卡日期
func (a *API) MissedHabits(c *gin.Context) {
	days := parseIntQuery(c, "days", service.DefaultMissedWindowDays, 1, maxMissedWindowDays)

	report, err := a.habits.Missed(c.Request.Context(), days)
	if err != nil {
		a.internalError(c, "missed habits", err, "failed to analyze missed habits")
		return
	}

	missed := make([]gin.H, 0, len(report.Missed))
	for _, item := range report.Missed {
		missed = append(missed, gin.H{"habit": item.Habit, "date": item.Date})
	}

	c.JSON(http.StatusOK, gin.H{
		"days":        report.Days,
		"habit_count": report.HabitCount,
		"all_clear":   report.AllClear(),
		"missed":      missed,
	})
}

// ListActivities 返回活动记录，可按名称过滤
func (a *API) ListActivities(c *gin.Context) {
	filter := service.ActivityFilter{
		Name:  c.Query("name"),
		Limit: parseIntQuery(c, "limit", defaultActivityLimit, 1, maxActivityLimit),
	}

	activities, err := a.activities.List(c.Request.Context(), filter)
	if err != nil {
		a.internalError(c, "list activities", err, "failed to list activities")
		return
	}

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityToPayload(activity))
	}

	c.JSON(http.StatusOK, gin.H{"activities": items})
}

// CreateActivity 以今天的日期打卡；重复打卡返回 200 且 duplicate=true
func (a *API) CreateActivity(c *gin.Context) {
	var payload activityPayload
	if !bindJSON(c, &payload, "invalid request payload") {
		return
	}

	result, err := a.activities.Log(c.Request.Context(), payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrActivityNameRequired) {
			respondError(c, http.StatusBadRequest, "activity name is required")
			return
		}
		a.internalError(c, "log activity", err, "failed to log activity")
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	c.JSON(status, gin.H{
		"activity":  activityToPayload(result.Activity),
		"duplicate": result.Duplicate,
		"streak":    result.Streak,
	})
}

// GetStreak 返回指定名称的连续打卡天数
func (a *API) GetStreak(c *gin.Context) {
	name := service.NormalizeName(c.Param("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	streak, err := a.activities.Streak(c.Request.Context(), name)
	if err != nil {
		a.internalError(c, "streak", err, "failed to calculate streak")
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "streak": streak})
}

func habitToPayload(habit db.Habit) gin.H {
	return gin.H{
		"id":        habit.ID,
		"name":      habit.Name,
		"frequency": habit.Frequency,
	}
}

func activityToPayload(activity db.Activity) gin.H {
	return gin.H{
		"id":       activity.ID,
		"name":     activity.Name,
		"date":     activity.Date,
		"category": activity.Category,
		"status":   activity.Status,
	}
}

func (a *API) handleHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNameTooShort):
		respondError(c, http.StatusBadRequest, "habit name must be at least 3 characters")
	case errors.Is(err, service.ErrHabitInvalidFrequency):
		respondError(c, http.StatusBadRequest, "frequency must be daily, weekly or monthly")
	case errors.Is(err, service.ErrHabitExists):
		respondError(c, http.StatusConflict, "habit already exists")
	default:
		a.internalError(c, "habit", err, "operation failed")
	}
}

func (a *API) internalError(c *gin.Context, op string, err error, message string) {
	log.Printf("[api] request=%s %s: %v", requestID(c), op, err)
	respondError(c, http.StatusInternalServerError, message)
}
