package config

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SharedConfig contiene la configuración de los middlewares compartidos
type SharedConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedHeaders []string
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() SharedConfig {
	return SharedConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Customer-ID"},
	}
}

// WithOriginsFromEnv reemplaza los orígenes permitidos con una lista separada por comas
func (c SharedConfig) WithOriginsFromEnv(origins string) SharedConfig {
	if origins != "" {
		c.AllowedOrigins = strings.Split(origins, ",")
	}
	return c
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config SharedConfig) {
	if config.EnableCORS {
		corsConfig := cors.Config{
			AllowOrigins:     config.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     config.AllowedHeaders,
			MaxAge:           12 * time.Hour,
			AllowCredentials: false,
		}
		if len(config.AllowedOrigins) == 1 && config.AllowedOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowOrigins = nil
		}
		router.Use(cors.New(corsConfig))
	}

	// Aquí se pueden agregar más middlewares compartidos en el futuro
}
