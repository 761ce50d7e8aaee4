package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	api "github.com/lessonmark/lessonmark/internal/api/http"
	"github.com/lessonmark/lessonmark/internal/auth"
	"github.com/lessonmark/lessonmark/internal/config"
	"github.com/lessonmark/lessonmark/internal/content"
	"github.com/lessonmark/lessonmark/internal/db"
	"github.com/lessonmark/lessonmark/internal/rbac"
	"github.com/lessonmark/lessonmark/internal/store"
	"github.com/lessonmark/lessonmark/internal/structure"
	"github.com/lessonmark/lessonmark/internal/validate"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Content tree + structure indices ---
	tree, err := content.NewTree(cfg.ContentPath, cfg.MaxLessonBytes)
	if err != nil {
		log.Fatalf("content tree: %v", err)
	}
	st, err := structure.Load(cfg.ContentPath)
	if err != nil {
		log.Fatalf("structure load failed: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	s := store.New(dbh, cfg.DBDriver)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash, cfg.DevLogin)

	runner := validate.NewRunner(tree, slog.Default(), validate.Options{})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Public content surface: the front-end renders lesson content as-is
	// and the questions as single/multi-select widgets.
	r.Get("/courses", api.ListCoursesHandler(st))
	r.Get("/courses/{courseID}", api.GetCourseHandler(st))
	r.Get("/courses/{courseID}/levels/{levelID}", api.GetLevelHandler(st))
	r.Get("/topics", api.ListTopicsHandler(st))
	r.Get("/topics/{topicID}", api.GetTopicHandler(st))
	r.Get("/topics/{topicID}/lessons/{lessonID}", api.GetLessonHandler(tree))
	r.Get("/topics/{topicID}/lessons/{lessonID}/html", api.GetLessonHTMLHandler(tree))
	r.Route("/assets", func(ar chi.Router) {
		api.MountAssets(ar, tree)
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("content:import")).
			Post("/import", api.ImportHandler(s, tree, st))
		pr.With(rbac.Require("validate:run")).
			Post("/validate", api.ValidateHandler(s, runner, st))
		pr.With(rbac.Require("runs:view")).
			Get("/validate/runs", api.ListRunsHandler(s))
		pr.With(rbac.Require("runs:view")).
			Get("/validate/runs/{runID}", api.GetRunHandler(s))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (content=%s, db=%s)", cfg.HTTPAddr, cfg.ContentPath, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
