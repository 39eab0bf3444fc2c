package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tokotitoh/marketplace-client/internal/application/services"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/observability"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/session"
	"github.com/tokotitoh/marketplace-client/pkg/config"
	"github.com/tokotitoh/marketplace-client/pkg/format"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("marketplace-client", cfg.Environment)
	logger := *observability.GetLogger()

	client := tokotitoh.NewClient(tokotitoh.Config{
		BaseURL:     cfg.API.BaseURL,
		BearerToken: cfg.API.BearerToken,
		PartnerCode: cfg.API.PartnerCode,
		Timeout:     cfg.API.Timeout,
	})
	store := session.NewStore(cfg.Session.Dir)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		query := fs.String("q", "", "search text")
		subcategory := fs.Int64("subcategory", 0, "subcategory id")
		pages := fs.Int("pages", 1, "number of pages to fetch")
		fs.Parse(os.Args[2:])

		listing := services.NewListingService(client, logger)
		listing.LoadInitial(ctx, services.ListingQuery{
			PageSize:      cfg.Listing.AdsPageSize,
			SubcategoryID: *subcategory,
			Search:        *query,
			Filters:       tokotitoh.FilterSet{},
		})
		for p := 1; p < *pages && listing.HasMore(); p++ {
			listing.LoadMore(ctx)
		}
		for _, ad := range listing.Ads() {
			fmt.Printf("%8d  %-12s  %s (%s, %s)\n",
				ad.ID, format.FormatIDR(ad.Price), ad.Title, ad.CityName, ad.ProvinceName)
		}

	case "ad":
		fs := flag.NewFlagSet("ad", flag.ExitOnError)
		id := fs.Int64("id", 0, "ad id")
		fs.Parse(os.Args[2:])

		ads := services.NewAdService(client, logger)
		ad, err := ads.Get(ctx, *id)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to fetch ad")
		}
		fmt.Printf("%s\n%s\n%s, %s, %s\n", ad.Title, format.FormatIDR(ad.Price),
			ad.DistrictName, ad.CityName, ad.ProvinceName)
		for _, u := range ad.ImageURLs() {
			fmt.Println(u)
		}

	case "categories":
		rows, err := client.Categories(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to fetch categories")
		}
		for _, c := range rows {
			fmt.Printf("%4d  %s\n", c.ID, c.Name)
		}

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		identity := fs.String("identity", "", "phone number or email")
		password := fs.String("password", "", "password")
		fs.Parse(os.Args[2:])

		auth := services.NewAuthService(client, store, logger)
		user, err := auth.Login(ctx, *identity, *password)
		if err != nil {
			logger.Fatal().Err(err).Msg("login failed")
		}
		fmt.Printf("logged in as %s (#%d)\n", user.Name, user.ID)

	case "notifications":
		fs := flag.NewFlagSet("notifications", flag.ExitOnError)
		userID := fs.Int64("user", 0, "user id")
		status := fs.String("status", "", "status filter")
		fs.Parse(os.Args[2:])

		notifications := services.NewNotificationService(client, logger)
		rows, err := notifications.List(ctx, *userID, *status)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to fetch notifications")
		}
		for _, n := range rows {
			fmt.Printf("%s  %s\n", n.CreatedOn, n.Title)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: marketplace <search|ad|categories|login|notifications> [flags]")
}
