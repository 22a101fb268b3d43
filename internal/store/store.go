package store

// Keys under which the engine's entities are persisted. Each entity is a
// single self-contained serialized blob; partial updates are read-modify-write
// of the whole blob.
const (
	KeyWeeklyPlan      = "weekly_plan"
	KeyScheduleFlags   = "schedule_flags"
	KeyShieldMarker    = "shield_marker"
	KeyDayAccumulation = "day_accumulation"
	KeyAttemptLog      = "attempt_log"
	KeySelection       = "selection"
	KeyPairing         = "pairing"
)

// StoreInterface is the key-value half of the shared channel that every
// process reads and writes through. A missing key is a normal steady state,
// not an error: Get reports it as found == false with a nil error.
type StoreInterface interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
