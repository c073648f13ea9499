package routes

import (
	"cazinoureview/constants"
	"cazinoureview/controllers"
	middlewares "cazinoureview/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) {

	router.Use(middlewares.ErrorHandler())

	hrController := controllers.NewHRController(db, redisCli, m)
	employeeController := controllers.NewEmployeeController(db)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.GET("/auth/google", controllers.GoogleAuth)
	v1.GET("/auth/google/callback", controllers.GoogleCallback)

	adminOnly := middlewares.AuthMiddleware(constants.AdminRoleOwner, constants.AdminRoleManager)

	v1.GET("/hr/import-sheets", adminOnly, hrController.DriveStatus)
	v1.POST("/hr/import-sheets", adminOnly, hrController.TriggerImport)
	v1.POST("/hr/calculate-profits", adminOnly, hrController.TriggerCalculate)
	v1.GET("/hr/monthly-data", adminOnly, hrController.GetMonthlyData)

	v1.GET("/hr/employees", adminOnly, employeeController.GetEmployees)
	v1.POST("/hr/employees", adminOnly, employeeController.CreateEmployee)
	v1.PUT("/hr/employees", adminOnly, employeeController.UpdateEmployee)
	v1.DELETE("/hr/employees", adminOnly, employeeController.DeleteEmployee)

	v1.GET("/hr/test-data", adminOnly, employeeController.GetTestRecords)
	v1.POST("/hr/test-data", adminOnly, employeeController.CreateTestRecord)
}
