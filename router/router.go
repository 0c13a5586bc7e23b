// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/offerwall/controller"
	"github.com/dev-mohitbeniwal/offerwall/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	controllers.Session.RegisterRoutes(api)
	controllers.Access.RegisterRoutes(api)
	controllers.Placement.RegisterRoutes(api)
	if controllers.Audit != nil {
		controllers.Audit.RegisterRoutes(api)
	}

	return router
}
