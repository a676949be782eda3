package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode picks gin's runtime mode from the APP_ENV setting. Gin boots in
// debug mode, which logs every route registration; only local development
// wants that, so anything else runs in release mode.
func SetGinMode(env string) {
	if env == "development" || env == "" {
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
