package controllers

import (
	"blockd/internal/models"
	"blockd/internal/providers"
	"blockd/internal/services"
	"blockd/internal/structures"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const (
	cacheKeyPlan          = "plan"
	cacheKeyAttemptsToday = "attempts:today"
	cacheKeyTopPrefix     = "attempts:top:"
)

type ApiController struct {
	conf     *structures.Config
	logger   providers.Logger
	schedule services.ScheduleServiceInterface
	shield   services.ShieldServiceInterface
	attempts services.AttemptServiceInterface
	cache    providers.CacheProviderInterface

	// top-culprit cache keys handed to serveFromCacheOrCompute, one per
	// requested limit, remembered so a new attempt can invalidate them all
	topMu   sync.Mutex
	topKeys map[string]struct{}
}

func NewApiController(conf *structures.Config, logger providers.Logger, schedule services.ScheduleServiceInterface, shield services.ShieldServiceInterface, attempts services.AttemptServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		conf:     conf,
		logger:   logger,
		schedule: schedule,
		shield:   shield,
		attempts: attempts,
		cache:    cache,
		topKeys:  make(map[string]struct{}),
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Decision is deliberately uncached: it is the one answer that must track
// "now" to the minute.
func (ac *ApiController) Decision(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, map[string]bool{"blocking": ac.schedule.ShouldBlock()})
}

func (ac *ApiController) GetPlan(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, cacheKeyPlan, func() (any, error) {
		return ac.schedule.GetPlan(), nil
	})
}

func (ac *ApiController) PutPlan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var plan models.WeeklyPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.schedule.PutPlan(&plan); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Plan write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Del(cacheKeyPlan)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetFlags(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, ac.schedule.GetFlags())
}

type flagsRequest struct {
	ScheduleEnabled   *bool `json:"schedule_enabled"`
	ManualBlockActive *bool `json:"manual_block_active"`
}

func (ac *ApiController) PutFlags(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req flagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.ScheduleEnabled != nil {
		if err := ac.schedule.SetScheduleEnabled(*req.ScheduleEnabled); err != nil {
			ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Flag write failed: %s", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	if req.ManualBlockActive != nil {
		if err := ac.schedule.SetManualBlock(*req.ManualBlockActive); err != nil {
			ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Flag write failed: %s", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type pauseRequest struct {
	Minutes int `json:"minutes"`
}

func (ac *ApiController) StartPause(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Minutes <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	until, err := ac.schedule.SetPause(time.Duration(req.Minutes) * time.Minute)
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Pause write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, map[string]int64{"pause_until": until.Unix()})
}

func (ac *ApiController) ClearPause(w http.ResponseWriter, r *http.Request) {
	if err := ac.schedule.ClearPause(); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Pause clear failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) ActivateShield(w http.ResponseWriter, r *http.Request) {
	if err := ac.shield.Activate(); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Shield activation failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) DeactivateShield(w http.ResponseWriter, r *http.Request) {
	if err := ac.shield.Deactivate(); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Shield deactivation failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) BlockedToday(w http.ResponseWriter, r *http.Request) {
	day, seconds := ac.shield.BlockedSecondsToday()
	ac.writeJSON(w, map[string]any{"day": day, "seconds": seconds})
}

type attemptRequest struct {
	Kind       models.AttemptKind `json:"kind"`
	Identifier string             `json:"identifier"`
}

func (ac *ApiController) LogAttempt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Identifier == "" || (req.Kind != models.AttemptApp && req.Kind != models.AttemptCategory) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := ac.attempts.LogAttempt(req.Kind, req.Identifier); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Attempt write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.invalidateAttemptCaches()
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) invalidateAttemptCaches() {
	ac.cache.Del(cacheKeyAttemptsToday)
	ac.topMu.Lock()
	defer ac.topMu.Unlock()
	for key := range ac.topKeys {
		ac.cache.Del(key)
	}
	clear(ac.topKeys)
}

func (ac *ApiController) AttemptsToday(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, cacheKeyAttemptsToday, func() (any, error) {
		return ac.attempts.AttemptsToday(), nil
	})
}

func (ac *ApiController) TopCulprits(w http.ResponseWriter, r *http.Request) {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = ac.conf.Shield.AttemptTopLimit
	}
	key := cacheKeyTopPrefix + cast.ToString(limit)
	ac.topMu.Lock()
	ac.topKeys[key] = struct{}{}
	ac.topMu.Unlock()
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.attempts.TopCulpritsToday(limit), nil
	})
}

func (ac *ApiController) GetSelection(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, ac.schedule.GetSelection())
}

func (ac *ApiController) PutSelection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var sel models.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.schedule.PutSelection(&sel); err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Selection write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetPairing(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, ac.schedule.GetPairing())
}
