// Package chat 将自由文本指令按固定顺序的正则规则分发到对应的业务操作。
package chat

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/mindfulme/internal/db"
	"github.com/mindfulme/internal/service"
)

// Intent 表示命中的指令类型
type Intent string

const (
	IntentExport      Intent = "export"
	IntentLogActivity Intent = "log_activity"
	IntentAddHabit    Intent = "add_habit"
	IntentMissed      Intent = "missed_report"
	IntentShowHabits  Intent = "show_habits"
	IntentGreeting    Intent = "greeting"
	IntentHelp        Intent = "help"
)

// Reply 是一次分发的结果
type Reply struct {
	Intent Intent
	Text   string
}

type handlerFunc func(ctx context.Context, match []string) (string, error)

// rule 为 nil pattern 时无条件命中，只用于末尾的默认规则
type rule struct {
	intent  Intent
	pattern *regexp.Regexp
	handle  handlerFunc
}

func (r rule) match(text string) ([]string, bool) {
	if r.pattern == nil {
		return nil, true
	}
	m := r.pattern.FindStringSubmatch(text)
	return m, m != nil
}

// Dispatcher 按顺序匹配规则，第一条命中的规则生效
// 不保存任何会话状态，每次调用相互独立
type Dispatcher struct {
	activities *service.ActivityService
	habits     *service.HabitService
	rules      []rule
}

// NewDispatcher 构造 Dispatcher，规则顺序即优先级
func NewDispatcher(activities *service.ActivityService, habits *service.HabitService) *Dispatcher {
	d := &Dispatcher{activities: activities, habits: habits}
	d.rules = []rule{
		{intent: IntentExport, pattern: regexp.MustCompile(`export|download\s+data|save\s+logs`), handle: d.export},
		{intent: IntentLogActivity, pattern: regexp.MustCompile(`log\s+(.+)`), handle: d.logActivity},
		{intent: IntentAddHabit, pattern: regexp.MustCompile(`add\s+habit\s+(.+)`), handle: d.addHabit},
		{intent: IntentMissed, pattern: regexp.MustCompile(`check\s+missed|analyze|report|show\s+missed`), handle: d.missed},
		{intent: IntentShowHabits, pattern: regexp.MustCompile(`show\s+habits|what\s+are\s+my\s+habits|show\s+streaks`), handle: d.showHabits},
		{intent: IntentGreeting, pattern: regexp.MustCompile(`\b(hi|hello|hey)\b`), handle: static(msgGreeting)},
		{intent: IntentHelp, handle: static(msgHelp)},
	}
	return d
}

// Classify 返回输入命中的意图，不访问存储
func (d *Dispatcher) Classify(input string) Intent {
	_, r := d.find(normalizeInput(input))
	return r.intent
}

// Respond 分发一条用户输入。
// 存储异常时返回 MsgFailure 作为回复文本，同时返回错误供调用方记录。
func (d *Dispatcher) Respond(ctx context.Context, input string) (Reply, error) {
	match, r := d.find(normalizeInput(input))

	text, err := r.handle(ctx, match)
	if err != nil {
		return Reply{Intent: r.intent, Text: MsgFailure}, err
	}
	return Reply{Intent: r.intent, Text: text}, nil
}

func (d *Dispatcher) find(text string) ([]string, rule) {
	for _, r := range d.rules {
		if match, ok := r.match(text); ok {
			return match, r
		}
	}
	// 默认规则总是命中，不会走到这里
	return nil, d.rules[len(d.rules)-1]
}

func normalizeInput(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func static(text string) handlerFunc {
	return func(context.Context, []string) (string, error) {
		return text, nil
	}
}

func (d *Dispatcher) export(context.Context, []string) (string, error) {
	return ExportRequest, nil
}

func (d *Dispatcher) logActivity(ctx context.Context, match []string) (string, error) {
	name := service.NormalizeName(match[1])

	result, err := d.activities.Log(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrActivityNameRequired) {
			return msgHelp, nil
		}
		return "", err
	}
	return formatLogResult(result), nil
}

func (d *Dispatcher) addHabit(ctx context.Context, match []string) (string, error) {
	name := service.NormalizeName(match[1])

	// 聊天入口不解析频率，固定为 daily
	habit, err := d.habits.Add(ctx, name, db.FrequencyDaily)
	switch {
	case err == nil:
		return formatHabitAdded(habit.Name, habit.Frequency), nil
	case errors.Is(err, service.ErrHabitNameTooShort):
		return msgHabitNameTooShort, nil
	case errors.Is(err, service.ErrHabitExists):
		return formatHabitExists(name), nil
	default:
		return "", err
	}
}

func (d *Dispatcher) missed(ctx context.Context, _ []string) (string, error) {
	report, err := d.habits.Missed(ctx, service.DefaultMissedWindowDays)
	if err != nil {
		return "", err
	}
	return formatMissedReport(report), nil
}

func (d *Dispatcher) showHabits(ctx context.Context, _ []string) (string, error) {
	items, err := d.habits.Detailed(ctx)
	if err != nil {
		return "", err
	}
	return formatDetailedHabits(items), nil
}
