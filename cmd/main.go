package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"VoiceNav-App/internal/domain/repository"
	"VoiceNav-App/internal/domain/service"
	"VoiceNav-App/internal/handler"
	"VoiceNav-App/internal/infrastructure/cache"
	"VoiceNav-App/internal/infrastructure/database"
	"VoiceNav-App/internal/infrastructure/firestore"
	"VoiceNav-App/internal/infrastructure/maps"
	repoImpl "VoiceNav-App/internal/repository"
	"VoiceNav-App/internal/usecase"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY環境変数が設定されていません")
	}

	// プロバイダの構築
	var directionsProvider repository.DirectionsProvider = maps.NewGoogleDirectionsProvider(apiKey)
	var geocodingProvider repository.GeocodingProvider = maps.NewGoogleGeocodingProvider(apiKey)
	var placesProvider repository.PlaceSearchProvider = maps.NewGooglePlacesProvider(apiKey)

	// PLACES_BACKEND=postgres のときは自前のPostGISデータベースで場所検索する
	if os.Getenv("PLACES_BACKEND") == "postgres" {
		fmt.Println("Initializing PostgreSQL client...")
		postgresClient, err := database.NewPostgreSQLClient()
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		defer postgresClient.Close()
		placesProvider = repoImpl.NewPostgresPlacesRepository(postgresClient)
		log.Printf("📍 場所検索バックエンド: PostgreSQL (PostGIS)")
	}

	// Redisが設定されていればプロバイダ応答をキャッシュする
	if os.Getenv("REDIS_ADDR") != "" {
		redisClient, err := cache.NewRedisClient(ctx)
		if err != nil {
			log.Fatalf("Redisクライアント初期化失敗: %v", err)
		}
		defer redisClient.Close()
		directionsProvider = repoImpl.NewCachedDirectionsProvider(directionsProvider, redisClient.GetClient())
		geocodingProvider = repoImpl.NewCachedGeocodingProvider(geocodingProvider, redisClient.GetClient())
		placesProvider = repoImpl.NewCachedPlaceSearchProvider(placesProvider, redisClient.GetClient())
	}

	// Firestore（計画済みルートのTTL付き保存）
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("FIRESTORE_PROJECT_ID環境変数が設定されていません")
	}
	firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()
	routeRepo := repoImpl.NewFirestoreRouteRepository(firestoreClient.GetClient())

	// Supabase（保存済みアンカー）。未設定ならアンカー照合なしで動作する
	var anchorsRepo repository.AnchorsRepository
	if os.Getenv("SUPABASE_URL") != "" {
		fmt.Println("Initializing Supabase client...")
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
		}
		anchorsRepo = repoImpl.NewSupabaseAnchorsRepository(supabaseClient)
		fmt.Println("✅ Supabase connection successful!")
	}

	// ドメインサービスの組み立て
	corridorService := service.NewRouteCorridorService(directionsProvider)
	placeResolver := service.NewPlaceResolverService(geocodingProvider, placesProvider)
	clusterDetector := service.NewClusterDetectorService()
	evaluator := service.NewParallelClusterEvaluator(directionsProvider, 0)
	assembler := service.NewRouteAssembler()
	navigationService := service.NewNavigationService(
		directionsProvider, corridorService, placeResolver, clusterDetector, evaluator, assembler,
	)

	// ユースケースとハンドラー
	navigationUseCase := usecase.NewNavigationUseCase(navigationService, routeRepo, anchorsRepo)
	recalculateUseCase := usecase.NewRouteRecalculateUseCase(navigationService, routeRepo)
	navigationHandler := handler.NewNavigationHandler(navigationUseCase)
	recalculateHandler := handler.NewNavigationRecalculateHandler(recalculateUseCase)

	// ルーティング
	router := gin.Default()
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "VoiceNav-App"})
	})

	navigation := router.Group("/navigation")
	{
		navigation.POST("/routes", navigationHandler.PostRoute)
		navigation.GET("/routes/:id", navigationHandler.GetRoute)
		navigation.POST("/routes/:id/recalculate", recalculateHandler.PostRecalculate)
		navigation.POST("/suggestions", navigationHandler.PostSuggestions)
		navigation.POST("/preview", navigationHandler.PostPreview)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("VoiceNav-App server starting on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
