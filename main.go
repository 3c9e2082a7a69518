package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/essience-store/storefront-api/auth"
	"github.com/essience-store/storefront-api/notify"
	"github.com/essience-store/storefront-api/routes"
	"github.com/essience-store/storefront-api/shopquery"
	"github.com/essience-store/storefront-api/store"
)

func main() {
	log.Println("✅ Starting storefront session service...")

	// Load environment variables
	_ = godotenv.Load()

	// Persistence substrate: Postgres when configured, JSON state file otherwise
	kv := initKV()

	notifier := notify.New()
	shopStore := store.NewShopStore(kv, notifier)
	sessions := store.NewSessionStore(kv, notifier)

	// Auth gateway + workflow. The OTP verifier is pluggable; the current
	// deployment ships with it disabled (AUTH_OTP_FLOW=gateway re-enables).
	gateway := auth.NewHTTPGateway(envOr("AUTH_GATEWAY_URL", "https://essience.in/ALUMNI/loginandsignup"))
	var verifier auth.Verifier = auth.DisabledVerifier{}
	if os.Getenv("AUTH_OTP_FLOW") == "gateway" {
		verifier = auth.GatewayVerifier{Gateway: gateway}
	}
	flow := auth.NewFlow(gateway, verifier, sessions, notifier)

	// Shop resolver: the store stays unresolved (and unpersisted) until the
	// deployment's custom domain maps to a shop id.
	shopState := shopquery.NewShopState()
	var catalog *shopquery.Client
	if uri := os.Getenv("SHOP_GRAPHQL_URI"); uri != "" {
		catalog = shopquery.NewClient(uri)
		go resolveShop(shopState, shopStore, catalog, envOr("CUSTOM_DOMAIN_NAME", "https://essience.in"))
	} else {
		log.Println("⚠️ SHOP_GRAPHQL_URI not set; running with an unresolved shop scope")
		shopState.SetError(fmt.Errorf("shop resolver not configured"))
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Shop:      shopStore,
		Sessions:  sessions,
		Notifier:  notifier,
		Flow:      flow,
		ShopState: shopState,
		Catalog:   catalog,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initKV picks the persistence substrate for shop-scoped state
func initKV() store.KV {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		kv, err := store.NewGormKV(db)
		if err != nil {
			log.Fatalf("❌ AutoMigrate failed: %v", err)
		}
		return kv
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ Failed to connect DB: %v", err)
		}
		kv, err := store.NewGormKV(db)
		if err != nil {
			log.Fatalf("❌ AutoMigrate failed: %v", err)
		}
		return kv
	}

	path := envOr("STATE_FILE", "data/state.json")
	log.Printf("💾 Using state file at %s", path)
	return store.NewFileKV(path)
}

// resolveShop maps the deployment's custom domain to a shop id and re-scopes
// the store. Retries a few times; on persistent failure the service keeps
// serving with an unresolved (in-memory only) scope.
func resolveShop(state *shopquery.ShopState, shopStore *store.ShopStore, catalog *shopquery.Client, domain string) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		details, err := catalog.ResolveShop(ctx, domain)
		cancel()

		if err == nil {
			state.SetResolved(details)
			shopStore.SetScope(string(details.ID))
			log.Printf("✅ Resolved shop %q for %s", details.Name, domain)
			return
		}
		lastErr = err
		log.Printf("⏳ Shop resolution attempt %d failed: %v", attempt, err)
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	state.SetError(lastErr)
	log.Printf("❌ Could not resolve shop for %s: %v", domain, lastErr)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
