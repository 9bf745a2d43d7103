package main

import (
	"log"
	"net/http"

	"pasarloka-be/internal/audit"
	"pasarloka-be/internal/config"
	"pasarloka-be/internal/db"
	"pasarloka-be/internal/listing"
	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/notification"
	"pasarloka-be/internal/offer"
	"pasarloka-be/internal/order"
	"pasarloka-be/internal/transport"
	"pasarloka-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	listingLookup := listing.NewRepository(database)

	notifRepo := notification.NewRepository(database)
	notifSvc := notification.NewService(notifRepo)

	auditRepo := audit.NewRepository(database)
	recorder := audit.NewRecorder(auditRepo)

	offerRepo := offer.NewRepository(database)
	offerSvc := offer.NewService(offerRepo, listingLookup, notifSvc, recorder)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, offerRepo, listingLookup, notifSvc, recorder)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	router := transport.NewRouter(&transport.Handler{
		Offers:        offerSvc,
		Orders:        orderSvc,
		Notifications: notifSvc,
		Users:         userSvc,
	})

	log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
