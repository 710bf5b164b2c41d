package router

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mindfulme/internal/handler"
	"github.com/mindfulme/internal/view"
	"github.com/mindfulme/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const sessionName = "mindfulme_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, sessionSecret string) *gin.Engine {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return setupRouter(handler.NewAPI(gdb, registry), registry, sessionSecret)
}

func setupRouter(api *handler.API, gatherer prometheus.Gatherer, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), handler.RequestID())

	// 配置会话中间件，仅用于页面回显最近的对话
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	// 加载内嵌模板并添加自定义函数
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"reply": view.ReplyHTML,
	}).ParseFS(web.FS, "template/*.html"))
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/healthz", api.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// 聊天入口
	r.GET("/", api.ShowChat)
	r.POST("/get", api.GetResponse)
	r.GET("/download_logs", api.DownloadLogs)

	// JSON API
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/habits", api.ListHabits)
		apiGroup.POST("/habits", api.CreateHabit)
		apiGroup.GET("/habits/missed", api.MissedHabits)

		apiGroup.GET("/activities", api.ListActivities)
		apiGroup.POST("/activities", api.CreateActivity)

		apiGroup.GET("/streaks/:name", api.GetStreak)
	}

	return r
}
