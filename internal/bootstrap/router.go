package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/logic-api/tco-backend/internal/api/http"
	"github.com/logic-api/tco-backend/internal/api/http/middleware"
	"github.com/logic-api/tco-backend/internal/scenarios"
	"github.com/logic-api/tco-backend/internal/tco"
)

// RouterDeps carries everything BuildRouter needs, constructed explicitly in
// main. There is no package-level state.
type RouterDeps struct {
	ServiceName string
	Version     string
	Environment string
	DB          *sql.DB
	StatsCache  scenarios.Cache
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID(dep.Logger))

	httpapi.RegisterRoot(r, dep.ServiceName, dep.Version)
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	tco.RegisterRoutes(r)

	store := scenarios.NewStore(dep.DB)
	svc := scenarios.NewService(store, dep.StatsCache, dep.Logger)
	scenarios.Register(r.Group("/scenarios"), svc)

	return r
}
