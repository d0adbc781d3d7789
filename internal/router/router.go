package router

import (
	"database/sql"
	"net/http"
	"time"

	"equine-clinic/internal/adapters/auth/local"
	blobmem "equine-clinic/internal/adapters/blobstore/memory"
	rediscoord "equine-clinic/internal/adapters/coord/redis"
	mem "equine-clinic/internal/adapters/storage/memory"
	pg "equine-clinic/internal/adapters/storage/postgres"
	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/catalog"
	"equine-clinic/internal/domain/clinics"
	"equine-clinic/internal/domain/dashboard"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/histories"
	"equine-clinic/internal/domain/horses"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/invoices"
	"equine-clinic/internal/domain/owners"
	"equine-clinic/internal/domain/session"
	"equine-clinic/internal/domain/stables"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/domain/veterinarians"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/logger"
	"equine-clinic/internal/platform/metrics"
	"equine-clinic/internal/ports/auth"
	"equine-clinic/internal/ports/blob"
	"equine-clinic/internal/ports/tx"

	_ "equine-clinic/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log     logger.Logger     // nil => Nop
	Metrics *metrics.Registry // nil => registro propio

	// AuthVerifier puede ser nil (modo dev, headers X-Debug-*).
	AuthVerifier auth.AuthVerifier
	// TokenIssuer nil deshabilita /auth/login.
	TokenIssuer auth.TokenIssuer
	// Identity nil => contraseñas locales (bcrypt) de la tabla de usuarios.
	Identity        auth.IdentityProvider
	DefaultClinicID string

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: secuencia de facturas y lock de emisión compartidos entre réplicas.
	Redis *goredis.Client

	Blobs      blob.Store // nil => memoria
	PresignTTL time.Duration
	MaxUpload  int64
	TaxRate    *float64 // nil => histories.DefaultTaxRate
}

// App expone el handler y los servicios que usan main (seed) y los jobs.
type App struct {
	Handler http.Handler

	Clinics       *clinics.Service
	Users         *users.Service
	Veterinarians *veterinarians.Service
	Inventory     *inventory.Service
	Metrics       *metrics.Registry
}

type repos struct {
	clinics       clinics.Repository
	users         users.Repository
	owners        owners.Repository
	stables       stables.Repository
	veterinarians veterinarians.Repository
	catalog       catalog.Repository
	inventory     inventory.Repository
	horses        horses.Repository
	events        events.Repository
	appointments  appointments.Repository
	histories     histories.Repository
	invoices      invoices.Repository
	sequencer     invoices.Sequencer
	locker        invoices.Locker
	tx            tx.Runner
}

func memoryRepos() repos {
	return repos{
		clinics:       mem.NewClinicRepo(),
		users:         mem.NewUserRepo(),
		owners:        mem.NewOwnerRepo(),
		stables:       mem.NewStableRepo(),
		veterinarians: mem.NewVeterinarianRepo(),
		catalog:       mem.NewCatalogRepo(),
		inventory:     mem.NewInventoryRepo(),
		horses:        mem.NewHorseRepo(),
		events:        mem.NewEventRepo(),
		appointments:  mem.NewAppointmentRepo(),
		histories:     mem.NewHistoryRepo(),
		invoices:      mem.NewInvoiceRepo(),
		sequencer:     mem.NewSequencer(),
		locker:        mem.NewLocker(),
		tx:            tx.Direct,
	}
}

func postgresRepos(db *sql.DB) repos {
	return repos{
		clinics:       pg.NewClinicsRepo(db),
		users:         pg.NewUsersRepo(db),
		owners:        pg.NewOwnersRepo(db),
		stables:       pg.NewStablesRepo(db),
		veterinarians: pg.NewVeterinariansRepo(db),
		catalog:       pg.NewCatalogRepo(db),
		inventory:     pg.NewInventoryRepo(db),
		horses:        pg.NewHorsesRepo(db),
		events:        pg.NewEventsRepo(db),
		appointments:  pg.NewAppointmentsRepo(db),
		histories:     pg.NewHistoriesRepo(db),
		invoices:      pg.NewInvoicesRepo(db),
		sequencer:     pg.NewSequencer(db),
		// un solo proceso: el lock en memoria basta; el CAS de la historia cubre el resto
		locker: mem.NewLocker(),
		tx:     pg.NewTxManager(db),
	}
}

func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

func New(opts Options) *App {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Blobs == nil {
		opts.Blobs = blobmem.New()
	}

	rp := memoryRepos()
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	}
	if opts.Redis != nil {
		rp.sequencer = rediscoord.NewSequencer(opts.Redis)
		rp.locker = rediscoord.NewLocker(opts.Redis)
	}

	// Services por módulo
	clinicsSvc := clinics.NewService(rp.clinics)
	usersSvc := users.NewService(rp.users, opts.Log, opts.Metrics.DuplicateUsersGone)
	ownersSvc := owners.NewService(rp.owners)
	stablesSvc := stables.NewService(rp.stables)
	vetsSvc := veterinarians.NewService(rp.veterinarians)
	catalogSvc := catalog.NewService(rp.catalog)
	inventorySvc := inventory.NewService(rp.inventory)
	horsesSvc := horses.NewService(rp.horses, ownersSvc, stablesSvc)
	eventsSvc := events.NewService(rp.events, opts.Blobs, opts.PresignTTL)
	appointmentsSvc := appointments.NewService(rp.appointments, horsesSvc, eventsSvc)
	historiesSvc := histories.NewService(rp.histories, histories.Deps{
		Horses:        horsesSvc,
		Veterinarians: vetsSvc,
		Events:        eventsSvc,
		Inventory:     inventorySvc,
		Tx:            rp.tx,
		Log:           opts.Log,
		Recorded:      opts.Metrics.HistoriesRecorded,
		TaxRate:       opts.TaxRate,
	})
	invoicesSvc := invoices.NewService(rp.invoices, invoices.Deps{
		Histories: historiesSvc,
		Horses:    horsesSvc,
		Owners:    ownersSvc,
		Sequencer: rp.sequencer,
		Locker:    rp.locker,
		Log:       opts.Log,
		Issued:    opts.Metrics.InvoicesIssued,
	})
	dashboardSvc := dashboard.NewService(dashboard.Sources{
		Appointments: appointmentsSvc,
		Inventory:    inventorySvc,
		Events:       eventsSvc,
		Horses:       horsesSvc,
		Owners:       ownersSvc,
		Histories:    historiesSvc,
		Invoices:     invoicesSvc,
	})

	identity := opts.Identity
	if identity == nil {
		identity = local.NewProvider(usersSvc)
	}
	sessionSvc := session.NewService(identity, usersSvc, opts.TokenIssuer, opts.Log)

	// Enlaces entre módulos. Se arman antes de servir tráfico.
	horsesSvc.RegisterDependent("histories", historiesSvc)
	horsesSvc.RegisterDependent("appointments", appointmentsSvc)
	horsesSvc.RegisterDependent("invoices", invoicesSvc)
	eventsSvc.RegisterDetacher("histories", historiesSvc)
	eventsSvc.RegisterDetacher("appointments", appointmentsSvc)
	eventsSvc.RegisterDetacher("invoices", invoicesSvc)
	eventsSvc.SetHistorySource(historiesSvc)
	historiesSvc.SetInvoiceRemover(invoicesSvc)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(opts.Log))
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.Metrics(opts.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthContext(opts.AuthVerifier, opts.DefaultClinicID))

		// Rutas por módulo
		session.RegisterRoutes(r, sessionSvc)
		clinics.RegisterRoutes(r, clinicsSvc)
		users.RegisterRoutes(r, usersSvc)
		owners.RegisterRoutes(r, ownersSvc)
		stables.RegisterRoutes(r, stablesSvc)
		veterinarians.RegisterRoutes(r, vetsSvc)
		catalog.RegisterRoutes(r, catalogSvc)
		inventory.RegisterRoutes(r, inventorySvc)
		horses.RegisterRoutes(r, horsesSvc)
		events.RegisterRoutes(r, eventsSvc, opts.MaxUpload)
		appointments.RegisterRoutes(r, appointmentsSvc)
		histories.RegisterRoutes(r, historiesSvc)
		invoices.RegisterRoutes(r, invoicesSvc)
		dashboard.RegisterRoutes(r, dashboardSvc)
	})

	return &App{
		Handler:       r,
		Clinics:       clinicsSvc,
		Users:         usersSvc,
		Veterinarians: vetsSvc,
		Inventory:     inventorySvc,
		Metrics:       opts.Metrics,
	}
}
