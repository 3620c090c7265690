package modules

import (
	"errors"
	"sync"
	"time"
)

const (
	maxAttempts    = 3
	captchaTimeout = 5 * time.Minute
	reaperInterval = time.Minute
)

var ErrNoSession = errors.New("no active captcha session")

// CaptchaSession is one outstanding challenge for one user.
type CaptchaSession struct {
	Code      string
	Attempts  int
	CreatedAt time.Time
	AssetID   string
}

type SubmitResult int

const (
	SubmitVerified SubmitResult = iota
	SubmitWrong
	SubmitLocked
)

// CaptchaStore holds at most one active session per user and drives the
// attempt and expiry transitions. Handlers run on separate goroutines, so
// every access goes through the mutex.
type CaptchaStore struct {
	mu       sync.RWMutex
	sessions map[int64]*CaptchaSession

	now      func() time.Time
	release  func(assetID string)
	onExpire func(userID int64)
	stop     chan struct{}
	stopOnce sync.Once
}

func NewCaptchaStore(release func(string), onExpire func(int64)) *CaptchaStore {
	if release == nil {
		release = func(string) {}
	}
	if onExpire == nil {
		onExpire = func(int64) {}
	}
	return &CaptchaStore{
		sessions: make(map[int64]*CaptchaSession),
		now:      time.Now,
		release:  release,
		onExpire: onExpire,
		stop:     make(chan struct{}),
	}
}

// Begin starts a fresh session for the user, replacing any existing one.
// The replaced session's asset is released first so it is not leaked.
func (s *CaptchaStore) Begin(userID int64, code, assetID string) {
	s.mu.Lock()
	var stale string
	if prev, ok := s.sessions[userID]; ok {
		stale = prev.AssetID
	}
	s.sessions[userID] = &CaptchaSession{
		Code:      code,
		CreatedAt: s.now(),
		AssetID:   assetID,
	}
	s.mu.Unlock()

	if stale != "" {
		s.release(stale)
	}
}

// Submit applies one answer. A correct value verifies and removes the
// session; the third cumulative wrong answer locks and removes it. Either
// terminal transition releases the session's asset.
func (s *CaptchaStore) Submit(userID int64, value string) (SubmitResult, int, error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return 0, 0, ErrNoSession
	}

	if value == sess.Code {
		delete(s.sessions, userID)
		asset := sess.AssetID
		s.mu.Unlock()
		if asset != "" {
			s.release(asset)
		}
		return SubmitVerified, 0, nil
	}

	sess.Attempts++
	if sess.Attempts >= maxAttempts {
		delete(s.sessions, userID)
		asset := sess.AssetID
		s.mu.Unlock()
		if asset != "" {
			s.release(asset)
		}
		return SubmitLocked, 0, nil
	}

	left := maxAttempts - sess.Attempts
	s.mu.Unlock()
	return SubmitWrong, left, nil
}

// Drop removes the user's session, if any, releasing its asset.
func (s *CaptchaStore) Drop(userID int64) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if ok && sess.AssetID != "" {
		s.release(sess.AssetID)
	}
}

func (s *CaptchaStore) Active(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

func (s *CaptchaStore) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartReaper sweeps expired sessions on the given interval until
// StopReaper is called.
func (s *CaptchaStore) StartReaper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *CaptchaStore) StopReaper() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *CaptchaStore) sweep() {
	type expired struct {
		userID int64
		asset  string
	}

	now := s.now()
	s.mu.Lock()
	var gone []expired
	for userID, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > captchaTimeout {
			gone = append(gone, expired{userID: userID, asset: sess.AssetID})
			delete(s.sessions, userID)
		}
	}
	s.mu.Unlock()

	for _, e := range gone {
		if e.asset != "" {
			s.release(e.asset)
		}
		s.onExpire(e.userID)
	}
}
