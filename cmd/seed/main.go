package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yomiyu15/Workingspacebackend/internal/config"
	"github.com/yomiyu15/Workingspacebackend/internal/database"
	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/modules/catalog"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func main() {
	withWorkspaces := flag.Bool("workspaces", true, "create sample workspaces when the table is empty")
	flag.Parse()

	config.LoadDotEnv(".env", ".env.local")
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[SEED] invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		logrus.WithError(err).Fatal("[SEED] DB connection failed")
	}
	defer database.Close(db)

	if err := repository.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("[SEED] AutoMigrate failed")
	}

	ctx := context.Background()
	store := repository.NewStore(db)

	if _, err := catalog.SeedDefaultLocations(ctx, store.Locations); err != nil {
		logrus.WithError(err).Fatal("[SEED] locations failed")
	}

	seedAdmin(ctx, store)

	if *withWorkspaces {
		seedWorkspaces(ctx, store)
	}

	logrus.Info("[SEED] done")
}

// seedAdmin creates ADMIN_USERNAME with ADMIN_PASSWORD unless it exists.
func seedAdmin(ctx context.Context, store *repository.Store) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logrus.Info("[SEED] ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin")
		return
	}

	if _, err := store.Admins.GetByUsername(ctx, username); err == nil {
		logrus.WithField("username", username).Info("[SEED] admin already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("[SEED] hash admin password")
	}
	admin := &domain.Admin{Username: username, PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := store.Admins.Create(ctx, admin); err != nil {
		logrus.WithError(err).Fatal("[SEED] create admin")
	}
	logrus.WithField("admin_id", admin.ID).Info("[SEED] admin created")
}

func seedWorkspaces(ctx context.Context, store *repository.Store) {
	existing, err := store.Workspaces.List(ctx, repository.WorkspaceFilters{Limit: 1})
	if err != nil {
		logrus.WithError(err).Fatal("[SEED] list workspaces")
	}
	if len(existing) > 0 {
		logrus.Info("[SEED] workspaces present, skipping samples")
		return
	}

	locations, err := store.Locations.List(ctx)
	if err != nil || len(locations) == 0 {
		logrus.WithError(err).Fatal("[SEED] no locations to attach workspaces to")
	}

	samples := []domain.Workspace{
		{
			Name: "Hot Desk", Category: "hot-desk", Capacity: ptr(1),
			PriceHour: ptr(12.5), PriceDay: ptr(100.0), PriceMonth: ptr(1800.0),
			InventoryCount: 20, Amenities: domain.Tags{"Wi-Fi", "Coffee"},
		},
		{
			Name: "Meeting Room", Category: "meeting-room", Capacity: ptr(8),
			PriceHour: ptr(40.0), InventoryCount: 2, LeadTime: "Same day",
			Amenities: domain.Tags{"Projector", "Whiteboard"},
		},
		{
			Name: "Private Office", Category: "private", Capacity: ptr(4),
			PriceMonth: ptr(3520.0), InventoryCount: 1, LeadTime: "24 hours",
			Amenities: domain.Tags{"Lockable door", "Wi-Fi"},
		},
	}

	for i := range samples {
		w := samples[i]
		w.IsActive = true
		w.LocationID = ptr(locations[i%len(locations)].ID)
		if err := store.Workspaces.Create(ctx, &w); err != nil {
			logrus.WithError(err).Fatalf("[SEED] create workspace %q", w.Name)
		}
		logrus.WithFields(logrus.Fields{"workspace_id": w.ID, "name": w.Name}).Info("[SEED] workspace created")
	}
}
