package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/auth"
	"github.com/example/social-platform/internal/platform/config"
	"github.com/example/social-platform/internal/platform/db"
	"github.com/example/social-platform/internal/platform/httpserver"
	"github.com/example/social-platform/internal/platform/logging"
	"github.com/example/social-platform/internal/platform/natsconn"
	"github.com/example/social-platform/internal/platform/run"
	"github.com/example/social-platform/internal/social/cache"
	"github.com/example/social-platform/internal/social/confirm"
	"github.com/example/social-platform/internal/social/counts"
	"github.com/example/social-platform/internal/social/handlers"
	"github.com/example/social-platform/internal/social/media"
	"github.com/example/social-platform/internal/social/store"
)

type stores struct {
	posts    store.PostStore
	comments store.CommentStore
	likes    store.LikeStore
	messages store.MessageStore
	users    store.UserStore
	blobs    media.BlobStore

	ready func() error
	close func()
}

// initStores opens Postgres and builds every store on the shared pool.
// Outside prod a missing database falls back to the in-memory stores so the
// service still comes up for local development.
func initStores(ctx context.Context, log *zap.Logger) stores {
	pool, err := db.Open(ctx, "")
	if err != nil {
		if strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), "prod") {
			log.Fatal("postgres required in prod", zap.Error(err))
		}
		log.Warn("postgres unavailable, using in-memory stores", zap.Error(err))
		return stores{
			posts:    store.NewInMemoryPostStore(),
			comments: store.NewInMemoryCommentStore(),
			likes:    store.NewInMemoryLikeStore(),
			messages: store.NewInMemoryMessageStore(),
			users:    store.NewInMemoryUserStore(),
			blobs:    media.NewInMemoryBlobStore(),
			ready:    func() error { return nil },
			close:    func() {},
		}
	}
	return stores{
		posts:    store.NewPostgresPostStore(pool),
		comments: store.NewPostgresCommentStore(pool),
		likes:    store.NewPostgresLikeStore(pool),
		messages: store.NewPostgresMessageStore(pool),
		users:    store.NewPostgresUserStore(pool),
		blobs:    media.NewPostgresBlobStore(pool),
		ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		},
		close: pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st := initStores(context.Background(), log)
	defer st.close()

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	verifier := auth.JWTVerifier{Secret: []byte(jwtSecret)}
	issuer := auth.Issuer{Secret: []byte(jwtSecret), TTL: tokenTTL()}

	// NATS is optional: without it the cache stays instance-local and
	// analytics events are dropped.
	var nc *nats.Conn
	var js nats.JetStreamContext
	if conn, err := natsconn.Connect(natsconn.Options{}); err != nil {
		log.Warn("nats unavailable, cache invalidation stays local", zap.Error(err))
	} else {
		nc = conn
		defer nc.Close()
		if jsCtx, err := nc.JetStream(); err != nil {
			log.Warn("jetstream unavailable, analytics disabled", zap.Error(err))
		} else {
			js = jsCtx
		}
	}

	ttlCache := cache.NewTTLCache(cfg.Cache.TTL, nc)
	counter := counts.NewCounter(st.likes, st.comments)
	poller := counts.NewPoller(counter, cfg.Counts.PollInterval, log)
	defer poller.Close()
	inv := cache.NewInvalidator(ttlCache, nc, poller, log)
	an := analytics.New(js, log)
	reg := confirm.NewRegistry()

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: st.ready})

	r.Post("/v1/auth/signup", handlers.Signup(st.users, issuer, an))
	r.Post("/v1/auth/login", handlers.Login(st.users, issuer, an))

	r.Get("/v1/posts", handlers.ListPosts(st.posts, ttlCache))
	r.Get("/v1/posts/{post_id}/comments", handlers.GetComments(st.comments, ttlCache))
	r.Get("/v1/likes/{kind}/{id}", handlers.ListLikes(st.likes))
	r.Get("/v1/counts/{kind}/{id}", handlers.GetCounts(counter, poller))
	r.Get("/v1/users/search", handlers.SearchUsers(st.users))
	r.Get("/v1/users/{username}", handlers.GetProfile(st.users, st.posts))
	r.Get("/v1/media/{id}", handlers.ServeMedia(st.blobs))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))

		r.Post("/v1/posts", handlers.CreatePost(st.posts, inv, an))
		r.Post("/v1/posts/{post_id}/delete", handlers.RequestDeletePost(st.posts, reg, inv, an))
		r.Post("/v1/posts/{post_id}/delete/cancel", handlers.CancelDeletePost(reg))
		r.Delete("/v1/posts/{post_id}", handlers.ConfirmDeletePost(reg))

		r.Post("/v1/posts/{post_id}/comments", handlers.CreateComment(st.comments, st.posts, inv, an))
		r.Post("/v1/comments/{comment_id}/delete", handlers.RequestDeleteComment(st.comments, reg, inv, an))
		r.Post("/v1/comments/{comment_id}/delete/cancel", handlers.CancelDeleteComment(reg))
		r.Delete("/v1/comments/{comment_id}", handlers.ConfirmDeleteComment(reg))

		r.Post("/v1/likes/{kind}/{id}", handlers.ToggleLike(st.likes, inv, an))

		r.Get("/v1/messages/unread", handlers.GetUnreadSummary(st.messages, ttlCache))
		r.Get("/v1/messages/{user_id}", handlers.GetConversation(st.messages))
		r.Post("/v1/messages/{user_id}", handlers.SendMessage(st.messages, st.users, inv, an))
		r.Post("/v1/messages/{user_id}/read", handlers.MarkRead(st.messages, inv))

		r.Post("/v1/users/me/avatar", handlers.SetAvatar(st.users))
		r.Post("/v1/media", handlers.UploadMedia(st.blobs))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

func tokenTTL() time.Duration {
	if v := strings.TrimSpace(os.Getenv("JWT_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return 24 * time.Hour
}
