package voice

import (
	"errors"
	"sync"
)

// ErrUnknownVoice signals a selection attempt with a name that
// matches nothing in the catalog. No preference is changed.
var ErrUnknownVoice = errors.New("unknown voice name")

// SelectByName stores the voice whose display name exactly matches
// name as userID's preference and returns it.
func SelectByName(catalog *Catalog, prefs Preferences, userID int64, name string) (Voice, error) {
	v, ok := catalog.ByName(name)
	if !ok {
		return Voice{}, ErrUnknownVoice
	}
	prefs.Set(userID, v.ID)
	return v, nil
}

// Preferences maps a user to their chosen voice id.
// Injected into the bot so a persisted store can slot in later.
type Preferences interface {
	Get(userID int64) string
	Set(userID int64, voiceID string)
}

// MemoryPrefs holds preferences in process memory only. Entries are
// never evicted - fine for a small bot, known leak on long deployments.
type MemoryPrefs struct {
	def   string
	mutex sync.RWMutex
	users map[int64]string
}

var _ Preferences = &MemoryPrefs{}

// NewMemoryPrefs creates a store that falls back to def for
// users with no stored selection.
func NewMemoryPrefs(def Voice) *MemoryPrefs {
	return &MemoryPrefs{
		def:   def.ID,
		users: make(map[int64]string),
	}
}

func (p *MemoryPrefs) Get(userID int64) string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	id, ok := p.users[userID]
	if !ok {
		return p.def
	}
	return id
}

func (p *MemoryPrefs) Set(userID int64, voiceID string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.users[userID] = voiceID
}
