package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/controllers"
	"github.com/md-abdullah-92/edurecords/internal/app/models"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	recordController *controllers.RecordController,
	registrationController *controllers.RegistrationController,
	sessionController *controllers.SessionController,
	healthController *controllers.HealthController,
) {
	// Student records
	router.GET("/StudentInfo", recordController.Lookup(models.StudentInfoLookup))
	router.GET("/StudentInfoschool", recordController.Lookup(models.StudentInfoSchoolLookup))

	// Results
	router.GET("/getResultsfirst", recordController.Lookup(models.FirstSemesterResultsLookup))
	router.GET("/getResultssceond", recordController.Lookup(models.SecondSemesterResultsLookup))
	router.GET("/getResults/:semester", recordController.GetSemesterResults)
	router.GET("/StudentFullResults", recordController.Lookup(models.FullResultsLookup))
	router.GET("/StudentFullResultsschool", recordController.Lookup(models.FullResultsSchoolLookup))

	// Institutions
	router.GET("/EIINInfo", recordController.Lookup(models.InstitutionLookup))

	// VDS creators and key material
	router.POST("/VDSCreator", registrationController.RegisterCreator)
	router.POST("/VDSdata", registrationController.RegisterKeyMaterial)
	router.GET("/VDSCreatorInfo", recordController.GetCreatorInfo)
	router.GET("/PKIInfo", recordController.Lookup(models.KeyMaterialLookup))

	// Session-bound legacy flow
	router.POST("/getdata", sessionController.SubmitRegistration)
	router.GET("/getResults", sessionController.GetSessionResults)

	router.GET("/health", healthController.Health)
	router.GET("/ping", healthController.Ping)
}
