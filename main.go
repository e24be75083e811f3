package main

import (
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	apiConfig "sales/src/api/config"
	saleCache "sales/src/sales/infrastructure/cache"
	saleController "sales/src/sales/infrastructure/controller"
	saleEventbus "sales/src/sales/infrastructure/eventbus"
	salePersistence "sales/src/sales/infrastructure/persistence"
	saleUseCase "sales/src/sales/application/usecase"
	saleService "sales/src/sales/domain/service"
	sharedConfig "sales/src/shared/infrastructure/config"
	sharedLogger "sales/src/shared/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	// Cargar .env si existe (en producción las vars vienen del entorno)
	godotenv.Load()

	log.Println("🚀 Sales Service - Iniciando...")

	// Configurar el router con Gin
	router := gin.New()

	// Agregar middlewares básicos necesarios
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if getEnv("PROMETHEUS_ENABLED", "true") == "true" {
		log.Println("Registering /metrics endpoint for Sales service")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for Sales service")
	}

	// Configurar middlewares compartidos (CORS)
	sharedCfg := sharedConfig.DefaultSharedConfig().
		WithOriginsFromEnv(os.Getenv("CORS_ALLOWED_ORIGINS"))
	sharedConfig.SetupSharedMiddleware(router, sharedCfg)

	// Obtener configuración de la base de datos de variables de entorno
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "sales_db")

	connStr := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=disable"

	// Conectar a la base de datos (opcional para bootstrap)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		log.Println("⚠️  Continuando sin DB (solo health check)")
		db = nil
	} else {
		defer db.Close()
		// Comprobar la conexión
		if err = db.Ping(); err != nil {
			log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
			log.Println("⚠️  Continuando sin DB (solo health check)")
			db = nil
		} else {
			log.Println("✅ Conexión a sales_db establecida con éxito")
		}
	}

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar el módulo API (health check)
	apiCfg := apiConfig.DefaultAPIConfig()
	apiCfg.DB = db
	apiCfg.Version = getEnv("SERVICE_VERSION", "1.0.0")
	apiConfig.SetupAPIModule(router, v1, apiCfg)

	// Configurar módulo Sales
	if db != nil {
		setupSalesModule(v1, db)
	} else {
		log.Println("⚠️  Módulo Sales deshabilitado (sin conexión a DB)")
	}

	// Iniciar el servidor
	port := getEnv("PORT", "8080")
	log.Printf("✅ Servidor Sales Service iniciado en http://localhost:%s", port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", port)
	router.Run(":" + port)
}

// setupSalesModule configura el módulo Sales
func setupSalesModule(router *gin.RouterGroup, db *sql.DB) {
	log.Println("Configurando módulo Sales...")

	// Ventana de cancelación configurable (en días)
	windowDays, err := strconv.Atoi(getEnv("CANCELLATION_WINDOW_DAYS", "30"))
	if err != nil || windowDays <= 0 {
		windowDays = 30
	}
	cancellationWindow := time.Duration(windowDays) * 24 * time.Hour

	// Crear repositorios
	saleRepo := salePersistence.NewSalePostgresRepository(db)
	userRepo := saleCache.NewUserCache(salePersistence.NewUserPostgresRepository(db))

	// Generador de sale numbers y publisher de eventos
	numberGen := saleService.NewSaleNumberGenerator(saleRepo)
	publisher := saleEventbus.NewLogrusEventPublisher(sharedLogger.GetLogger())

	// Crear casos de uso
	createSaleUC := saleUseCase.NewCreateSaleUseCase(saleRepo, userRepo, numberGen, publisher)
	getSaleUC := saleUseCase.NewGetSaleUseCase(saleRepo)
	listSalesUC := saleUseCase.NewListSalesUseCase(saleRepo)
	updateSaleUC := saleUseCase.NewUpdateSaleUseCase(saleRepo, userRepo, publisher)
	cancelSaleUC := saleUseCase.NewCancelSaleUseCase(saleRepo, publisher, cancellationWindow)
	cancelSaleItemUC := saleUseCase.NewCancelSaleItemUseCase(saleRepo, publisher)
	deleteSaleUC := saleUseCase.NewDeleteSaleUseCase(saleRepo)

	// Crear y registrar controlador
	saleCtrl := saleController.NewSaleController(
		createSaleUC,
		getSaleUC,
		listSalesUC,
		updateSaleUC,
		cancelSaleUC,
		cancelSaleItemUC,
		deleteSaleUC,
	)
	saleCtrl.RegisterRoutes(router)
}
