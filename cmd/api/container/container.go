package container

import (
	"github.com/memorias-app/memorias/cmd/api/repository"
	"github.com/memorias-app/memorias/cmd/api/service"
	"github.com/memorias-app/memorias/common/bootstrap"
	"github.com/memorias-app/memorias/common/clients"
	"github.com/memorias-app/memorias/common/ratelimit"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components

	// Repositories
	AlbumRepo *repository.AlbumRepository
	MediaRepo *repository.MediaRepository

	// Services
	AlbumService   *service.AlbumService
	MediaService   *service.MediaService
	SuggestService *service.SuggestService
	Sweeper        *service.BlobSweeper

	// External clients
	Sessions clients.SessionProvider

	// Limiter is nil when Redis is disabled; suggestion routes then run
	// unthrottled.
	Limiter *ratelimit.Limiter
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config
	log := components.Logger

	// Repositories
	albumRepo := repository.NewAlbumRepository(components.DB)
	mediaRepo := repository.NewMediaRepository(components.DB)

	// External clients share the suggestion timeout; the session provider gets
	// its own, usually tighter, budget.
	suggestHTTP := clients.NewHTTPClient(cfg.Suggest.Timeout, log)
	authHTTP := clients.NewHTTPClient(cfg.Auth.Timeout, log)

	music := clients.NewITunesClient(cfg.Suggest.MusicBaseURL, suggestHTTP, log)
	places := clients.NewNominatimClient(cfg.Suggest.PlacesBaseURL, suggestHTTP, log)
	sessions := clients.NewSessionClient(cfg.Auth, authHTTP, components.Cache, log)

	// Services (bottom-up: dependencies first)
	albumService := service.NewAlbumService(albumRepo, mediaRepo, log)
	mediaService := service.NewMediaService(albumRepo, mediaRepo, components.Blob, components.Queue, log)
	suggestService := service.NewSuggestService(
		music,
		places,
		components.Cache,
		cfg.Suggest.DebounceQuiet,
		cfg.Suggest.MaxResults,
		cfg.Suggest.CacheTTL,
		log,
	)
	sweeper := service.NewBlobSweeper(components.Queue, components.Blob, log)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled && components.Redis != nil {
		limiter = ratelimit.NewLimiter(components.Redis, log)
	}

	return &Container{
		Components:     components,
		AlbumRepo:      albumRepo,
		MediaRepo:      mediaRepo,
		AlbumService:   albumService,
		MediaService:   mediaService,
		SuggestService: suggestService,
		Sweeper:        sweeper,
		Sessions:       sessions,
		Limiter:        limiter,
	}, nil
}
