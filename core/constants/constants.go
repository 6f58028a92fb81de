package constants

// Application
const (
	AppName      = "arenahub-backend"
	DefaultPort  = 7070
	APIBasePath  = "/api/v1"
	ContextActor = "actor_id"
	ContextRole  = "actor_role"
)

// Scheduling. All civil times are interpreted in DefaultTimezone; the
// platform runs in a single fixed zone without DST shifts.
const (
	DefaultTimezone             = "America/Recife"
	DefaultSlotDurationMinutes  = 60
	DefaultCancellationLeadHour = 24
	MinutesPerDay               = 1440
	DaysPerWeek                 = 7
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Auth
const (
	AccessTokenTTLHours = 24
	BcryptCost          = 12
)

// Queue task types
const (
	TaskBookingConfirmed = "notification:booking_confirmed"
	TaskBookingCancelled = "notification:booking_cancelled"
	TaskSeriesCreated    = "notification:series_created"
)

// Cache
const (
	SlotCacheKeyPrefix  = "slots:court:"
	SlotCacheTTLSeconds = 300
	CourtCacheKeyPrefix = "court:"
)
