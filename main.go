package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/stellarchive/catalogbackend/config"
	"github.com/stellarchive/catalogbackend/database"
	"github.com/stellarchive/catalogbackend/handlers"
	"github.com/stellarchive/catalogbackend/media"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
	"github.com/stellarchive/catalogbackend/services"
)

// mountCatalog registers the shared route set of one entity kind: the public
// catalog surface plus the admin-gated management surface. Kinds with a rich
// admin listing pass it as findAll; the others pass nil.
func mountCatalog[D, E, I any](r chi.Router, path string, h *handlers.CatalogHandler[D, E, I], auth, adminOnly func(http.Handler) http.Handler, findAll http.HandlerFunc) {
	r.Route("/"+path, func(r chi.Router) {
		r.Get("/items/{page}/{limit}", h.Items)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Post("/", h.Create)
			r.Get("/names", h.Names)
			r.Get("/schema", h.Schema)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			if findAll != nil {
				r.Get("/", findAll)
			}
		})
	})
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.UploadsPath, cfg.ThumbnailsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	if err := database.SeedRoles(db); err != nil {
		log.Fatalf("FATAL: Failed to seed roles: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeUpload:    filepath.Base(cfg.UploadsPath),
		media.AssetTypeThumbnail: filepath.Base(cfg.ThumbnailsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing uploads in: %s", cfg.UploadsPath)
	log.Printf("Storing thumbnails in: %s", cfg.ThumbnailsPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)

	imageRepo := repository.NewGormImageRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	roleRepo := repository.NewGormRoleRepository(db)

	imageService := services.NewImageService(imageRepo, mediaStore, cfg.PublicBaseURL, cfg.ThumbnailMaxSize)
	personService := services.NewPersonService(db, repository.NewPersonRepository(db), imageService, cfg.PublicBaseURL)
	planetService := services.NewPlanetService(db, repository.NewPlanetRepository(db), imageService, cfg.PublicBaseURL)
	filmService := services.NewFilmService(db, repository.NewFilmRepository(db), imageService, cfg.PublicBaseURL)
	specieService := services.NewSpecieService(db, repository.NewSpecieRepository(db), imageService, cfg.PublicBaseURL)
	vehicleService := services.NewVehicleService(db, repository.NewVehicleRepository(db), imageService, cfg.PublicBaseURL)
	starshipService := services.NewStarshipService(db, repository.NewStarshipRepository(db), imageService, cfg.PublicBaseURL)

	jwtSecret := []byte(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(userRepo, roleRepo, jwtSecret, cfg.TokenLifetime)
	imageHandler := handlers.NewImageHandler(imageService)
	adminUserHandler := handlers.NewAdminUserHandler(userRepo, roleRepo)
	adminRoleHandler := handlers.NewAdminRoleHandler(roleRepo)

	personHandler := handlers.NewCatalogHandler[services.PersonDTO, models.Person, services.PersonInfo](personService)
	planetHandler := handlers.NewCatalogHandler[services.PlanetDTO, models.Planet, services.PlanetInfo](planetService)
	filmHandler := handlers.NewCatalogHandler[services.FilmDTO, models.Film, services.FilmInfo](filmService)
	specieHandler := handlers.NewCatalogHandler[services.SpecieDTO, models.Specie, services.SpecieInfo](specieService)
	vehicleHandler := handlers.NewCatalogHandler[services.VehicleDTO, models.Vehicle, services.VehicleInfo](vehicleService)
	starshipHandler := handlers.NewCatalogHandler[services.StarshipDTO, models.Starship, services.StarshipInfo](starshipService)

	auth := handlers.AuthMiddleware(jwtSecret, userRepo)
	adminOnly := handlers.RequireRole(models.RoleAdmin)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)

	r.Route("/api/v1", func(r chi.Router) {
		mountCatalog(r, "people", personHandler, auth, adminOnly, handlers.FindAllHandler(personService.FindAll))
		mountCatalog(r, "planets", planetHandler, auth, adminOnly, handlers.FindAllHandler(planetService.FindAll))
		mountCatalog(r, "films", filmHandler, auth, adminOnly, nil)
		mountCatalog(r, "species", specieHandler, auth, adminOnly, nil)
		mountCatalog(r, "vehicles", vehicleHandler, auth, adminOnly, nil)
		mountCatalog(r, "starships", starshipHandler, auth, adminOnly, handlers.FindAllHandler(starshipService.FindAll))

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/me", authHandler.CurrentUser)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/images", imageHandler.Upload)
				r.Delete("/images/{filename}", imageHandler.Delete)

				r.Route("/admin", func(r chi.Router) {
					r.Get("/users", adminUserHandler.ListUsers)
					r.Get("/users/{id}", adminUserHandler.GetUser)
					r.Delete("/users/{id}", adminUserHandler.DeleteUser)
					r.Post("/users/{id}/roles/{roleID}", adminUserHandler.AssignRole)
					r.Delete("/users/{id}/roles/{roleID}", adminUserHandler.RemoveRole)

					r.Get("/roles", adminRoleHandler.ListRoles)
					r.Post("/roles", adminRoleHandler.CreateRole)
					r.Get("/roles/{id}", adminRoleHandler.GetRole)
				})
			})
		})

		uploadsSubDir := filepath.Base(cfg.UploadsPath)
		r.Get(fmt.Sprintf("/%s/*", uploadsSubDir), handlers.AssetServer(cfg.MediaStoragePath, uploadsSubDir))
		log.Printf("Registered upload server at /api/v1/%s/*", uploadsSubDir)

		thumbnailSubDir := filepath.Base(cfg.ThumbnailsPath)
		r.Get(fmt.Sprintf("/%s/*", thumbnailSubDir), handlers.AssetServer(cfg.MediaStoragePath, thumbnailSubDir))
		log.Printf("Registered thumbnail server at /api/v1/%s/*", thumbnailSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
