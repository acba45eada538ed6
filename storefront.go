package storefront

import (
	"context"
	"log/slog"
	"time"

	"github.com/goodmarket/storefront-go/pkg/address"
	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/cartsync"
	"github.com/goodmarket/storefront-go/pkg/catalog"
	"github.com/goodmarket/storefront-go/pkg/checkout"
	"github.com/goodmarket/storefront-go/pkg/config"
	"github.com/goodmarket/storefront-go/pkg/logger"
	"github.com/goodmarket/storefront-go/pkg/orders"
	"github.com/goodmarket/storefront-go/pkg/redis"
	"github.com/goodmarket/storefront-go/pkg/session"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

// Config selects the backend and the credential storage strategy. Exactly
// one storage backend is used: Redis when RedisURL is set, the filesystem
// when StoragePath is set, in-memory otherwise.
type Config struct {
	APIBaseURL    string        `env:"STOREFRONT_API_BASE_URL,required"`
	HTTPTimeout   time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" envDefault:"15s"`
	CredentialTTL time.Duration `env:"STOREFRONT_CREDENTIAL_TTL" envDefault:"168h"`
	StoragePath   string        `env:"STOREFRONT_STORAGE_PATH"`
	RedisURL      string        `env:"STOREFRONT_REDIS_URL"`
	RedisPrefix   string        `env:"STOREFRONT_REDIS_PREFIX" envDefault:"gm"`
	Debug         bool          `env:"STOREFRONT_DEBUG"`
}

// Storefront wires the SDK together: one shared transport, one session
// manager and the service clients that ride on them. The cross-cutting
// hooks are installed here so no caller has to remember them:
//
//   - a 401 on any authenticated request forces logout through the session
//   - a session transition to anonymous drops the local cart
type Storefront struct {
	Session   *session.Manager
	Cart      *cartsync.Synchronizer
	Catalog   *catalog.Client
	Orders    *orders.Client
	Addresses *address.Client
	Checkout  *checkout.Client

	client   *apiclient.Client
	store    tokenstore.Store
	log      *slog.Logger
	cartOpts []cartsync.Option
}

// New assembles a storefront from explicit configuration.
func New(cfg Config, opts ...Option) (*Storefront, error) {
	s := &Storefront{}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		s.log = logger.New(
			logger.WithLevel(level),
			logger.WithAttr(slog.String("app", "storefront")),
		)
	}

	if s.store == nil {
		store, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		s.store = store
	}

	s.client = apiclient.New(cfg.APIBaseURL, s.store,
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithCredentialTTL(cfg.CredentialTTL),
		apiclient.WithLogger(s.log),
	)

	s.Session = session.New(s.client, session.WithLogger(s.log))
	s.client.OnUnauthorized(s.Session.HandleUnauthorized)

	s.Cart = cartsync.New(s.client, s.Session, append([]cartsync.Option{cartsync.WithLogger(s.log)}, s.cartOpts...)...)
	s.Session.OnTransition(func(state session.State) {
		if state == session.StateAnonymous {
			s.Cart.Reset()
		}
	})

	s.Catalog = catalog.New(s.client)
	s.Orders = orders.New(s.client)
	s.Addresses = address.New(s.client)
	s.Checkout = checkout.New(s.client)

	return s, nil
}

// NewFromEnv assembles a storefront from STOREFRONT_* environment
// variables, loading a .env file when one is present.
func NewFromEnv(opts ...Option) (*Storefront, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Initialize resolves the persisted session exactly once and, when it comes
// back authenticated, warms the cart. The cart fetch is best effort: a
// failed warm-up leaves the cart empty until the next explicit refresh.
func (s *Storefront) Initialize(ctx context.Context) session.State {
	state := s.Session.Initialize(ctx)
	if state == session.StateAuthenticated {
		if err := s.Cart.Refresh(ctx); err != nil {
			s.log.WarnContext(ctx, "initial cart refresh failed", logger.Error(err))
		}
	}
	return state
}

// Client exposes the shared transport for callers that need raw access to
// an endpoint the service clients do not cover.
func (s *Storefront) Client() *apiclient.Client {
	return s.client
}

func newStore(cfg Config) (tokenstore.Store, error) {
	switch {
	case cfg.RedisURL != "":
		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  cfg.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return tokenstore.NewRedisStore(client, cfg.RedisPrefix), nil
	case cfg.StoragePath != "":
		return tokenstore.NewFileStore(cfg.StoragePath), nil
	default:
		return tokenstore.NewMemoryStore(), nil
	}
}
