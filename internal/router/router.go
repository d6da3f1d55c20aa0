package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/ghabit/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("ghabit_session", store))

	r.GET("/ping", api.Ping)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/tasks/:date", api.ListTasks)
		apiGroup.POST("/tasks/:date", api.CreateTask)
		apiGroup.PUT("/tasks/:date/:id", api.UpdateTask)
		apiGroup.DELETE("/tasks/:date/:id", api.DeleteTask)
		apiGroup.GET("/tasks/:date/stats", api.TaskStats)

		apiGroup.GET("/habits/rollup/:year", api.HabitYearRollup)
		apiGroup.GET("/habits/:month", api.GetHabitMonth)
		apiGroup.POST("/habits/:month", api.CreateHabit)
		apiGroup.DELETE("/habits/:month/:id", api.DeleteHabit)
		apiGroup.PUT("/habits/:month/marks", api.SetHabitMark)
		apiGroup.PUT("/habits/:month/order", api.SetHabitOrder)
		apiGroup.POST("/habits/:month/copy-previous", api.CopyPreviousHabits)
		apiGroup.GET("/habits/:month/stats", api.HabitMonthStats)
		apiGroup.GET("/habits/:month/weeks", api.HabitWeekCards)

		apiGroup.GET("/goals", api.ListGoals)
		apiGroup.POST("/goals", api.CreateGoal)
		apiGroup.PUT("/goals/:id", api.UpdateGoal)
		apiGroup.DELETE("/goals/:id", api.DeleteGoal)

		apiGroup.GET("/profile", api.GetProfile)
		apiGroup.PUT("/profile", api.UpdateProfile)

		apiGroup.GET("/state", api.GetState)
		apiGroup.PUT("/state", api.PutState)

		apiGroup.GET("/documents/:key", api.GetDocument)
		apiGroup.PUT("/documents/:key", api.PutDocument)

		apiGroup.DELETE("/clear-all", api.ClearAll)
	}

	return r
}
