package httpapi

import (
	"net/http"

	"gemaura-backend-go/internal/config"
	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB       *sqlx.DB
	Config   config.Config
	Tokens   services.TokenService
	Mailer   services.Mailer
	Validate *validator.Validate
}

func NewServer(db *sqlx.DB, cfg config.Config) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.SessionTTL(),
	}
	return &Server{
		DB:       db,
		Config:   cfg,
		Tokens:   tokens,
		Mailer:   &services.SMTPMailer{DB: db},
		Validate: validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	auth := WithAuth(s.Tokens, s.Config.CookieName)
	loginLimiter := httprate.Limit(s.Config.LoginRateLimit, s.Config.LoginRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(tooManyRequests))
	contactLimiter := httprate.Limit(s.Config.ContactRateLimit, s.Config.ContactRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(tooManyRequests))

	r.Route("/api", func(api chi.Router) {
		api.With(loginLimiter).Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)
		api.With(auth).Get("/auth/me", s.Me)
		api.With(auth).Put("/auth/password", s.ChangePassword)

		api.Get("/settings", s.PublicSettings)
		api.With(auth).Post("/settings", s.UpsertSettings)

		api.With(auth).Post("/upload", s.Upload)
		api.With(auth).Delete("/upload/{assetId}", s.DeleteUpload)

		registerCatalog(api, auth, s)

		api.Route("/contact-requests", func(contact chi.Router) {
			contact.With(contactLimiter).Post("/", s.SubmitContactRequest)
			contact.With(auth).Get("/", s.ListContactRequests)
			contact.With(auth).Get("/{requestId}", s.GetContactRequest)
			contact.With(auth).Put("/{requestId}", s.UpdateContactRequest)
			contact.With(auth).Delete("/{requestId}", s.DeleteContactRequest)
		})
	})

	r.Get("/media/assets/{assetId}/content", s.MediaContent)
	return r
}

// registerCatalog wires the entity CRUD surface: reads public, mutations
// authenticated. Pages are the intentional exception, their full list and
// detail need auth while /public and /slug/{slug} do not.
func registerCatalog(api chi.Router, auth func(http.Handler) http.Handler, s *Server) {
	api.Route("/gemstones", func(r chi.Router) {
		r.Get("/", s.ListGemstones)
		r.Get("/{gemstoneId}", s.GetGemstone)
		r.With(auth).Post("/", s.CreateGemstone)
		r.With(auth).Put("/{gemstoneId}", s.UpdateGemstone)
		r.With(auth).Delete("/{gemstoneId}", s.DeleteGemstone)
	})
	api.Route("/jewelry-items", func(r chi.Router) {
		r.Get("/", s.ListJewelry)
		r.Get("/{jewelryId}", s.GetJewelry)
		r.With(auth).Post("/", s.CreateJewelry)
		r.With(auth).Put("/{jewelryId}", s.UpdateJewelry)
		r.With(auth).Delete("/{jewelryId}", s.DeleteJewelry)
	})
	api.Route("/gemstone-categories", func(r chi.Router) {
		r.Get("/", s.ListGemstoneCategories)
		r.With(auth).Post("/", s.CreateGemstoneCategory)
		r.With(auth).Put("/{categoryId}", s.UpdateGemstoneCategory)
		r.With(auth).Delete("/{categoryId}", s.DeleteGemstoneCategory)
	})
	api.Route("/jewelry-categories", func(r chi.Router) {
		r.Get("/", s.ListJewelryCategories)
		r.With(auth).Post("/", s.CreateJewelryCategory)
		r.With(auth).Put("/{categoryId}", s.UpdateJewelryCategory)
		r.With(auth).Delete("/{categoryId}", s.DeleteJewelryCategory)
	})
	api.Route("/collections", func(r chi.Router) {
		r.Get("/", s.ListCollections)
		r.Get("/{collectionId}", s.GetCollection)
		r.With(auth).Post("/", s.CreateCollection)
		r.With(auth).Put("/{collectionId}", s.UpdateCollection)
		r.With(auth).Delete("/{collectionId}", s.DeleteCollection)
	})
	api.Route("/posts", func(r chi.Router) {
		r.Get("/", s.ListPosts)
		r.Get("/{postId}", s.GetPost)
		r.With(auth).Post("/", s.CreatePost)
		r.With(auth).Put("/{postId}", s.UpdatePost)
		r.With(auth).Delete("/{postId}", s.DeletePost)
	})
	api.Route("/pages", func(r chi.Router) {
		r.Get("/public", s.PublicPages)
		r.Get("/slug/{slug}", s.GetPageBySlug)
		r.With(auth).Get("/", s.ListPages)
		r.With(auth).Get("/{pageId}", s.GetPage)
		r.With(auth).Post("/", s.CreatePage)
		r.With(auth).Put("/{pageId}", s.UpdatePage)
		r.With(auth).Delete("/{pageId}", s.DeletePage)
	})
	api.Route("/hero-slides", func(r chi.Router) {
		r.Get("/", s.ListHeroSlides)
		r.With(auth).Post("/", s.CreateHeroSlide)
		r.With(auth).Put("/{slideId}", s.UpdateHeroSlide)
		r.With(auth).Delete("/{slideId}", s.DeleteHeroSlide)
	})
	api.Route("/navbar-items", func(r chi.Router) {
		r.Get("/", s.ListNavbarItems)
		r.With(auth).Post("/", s.CreateNavbarItem)
		r.With(auth).Put("/{itemId}", s.UpdateNavbarItem)
		r.With(auth).Delete("/{itemId}", s.DeleteNavbarItem)
	})
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
}

func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}
