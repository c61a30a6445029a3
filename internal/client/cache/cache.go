// Package cache is the on-disk mirror of the remote store: the last known
// document per user, the current session tokens, and the offline-unlock
// material. It is what lets the journal open (and keep accepting edits)
// while the store is unreachable.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/client/remote"
	"github.com/lumina-journal/lumina/internal/common"
)

const sessionKey = "session"

// Cache stores JSON blobs under a base directory via diskv.
type Cache struct {
	d *diskv.Diskv
}

// New opens (creating if needed) a cache rooted at basePath.
func New(basePath string) *Cache {
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 8 * 1024 * 1024,
	})
	return &Cache{d: d}
}

// documentEntry wraps a cached document with its sync state.
type documentEntry struct {
	Doc      *models.UserDocument `json:"doc"`
	Dirty    bool                 `json:"dirty"`
	CachedAt time.Time            `json:"cachedAt"`
}

func docKey(userID string) string   { return "doc-" + userID }
func unlockKey(email string) string { return "unlock-" + email }

// Put stores the document for userID. dirty marks edits the store has not
// confirmed yet.
func (c *Cache) Put(userID string, doc *models.UserDocument, dirty bool) error {
	e := documentEntry{Doc: doc, Dirty: dirty, CachedAt: time.Now()}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cached document: %w", err)
	}
	return c.d.Write(docKey(userID), data)
}

// Get returns the cached document for userID and whether it carries
// unconfirmed edits. common.ErrNotFound when nothing is cached.
func (c *Cache) Get(userID string) (*models.UserDocument, bool, error) {
	data, err := c.d.Read(docKey(userID))
	if err != nil {
		return nil, false, common.ErrNotFound
	}
	var e documentEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("corrupt cached document: %w", err)
	}
	if e.Doc == nil {
		return nil, false, common.ErrNotFound
	}
	return e.Doc, e.Dirty, nil
}

// PutSession persists the session tokens for restore-on-startup.
func (c *Cache) PutSession(s *remote.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return c.d.Write(sessionKey, data)
}

// GetSession returns the cached session, or common.ErrNotFound.
func (c *Cache) GetSession() (*remote.Session, error) {
	data, err := c.d.Read(sessionKey)
	if err != nil {
		return nil, common.ErrNotFound
	}
	var s remote.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt cached session: %w", err)
	}
	return &s, nil
}

// ClearSession forgets the cached session (logout).
func (c *Cache) ClearSession() error {
	if !c.d.Has(sessionKey) {
		return nil
	}
	return c.d.Erase(sessionKey)
}

// unlockEntry is the offline-unlock material for one account.
type unlockEntry struct {
	UserID   string `json:"userId"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// PutUnlock stores salt+verifier enabling offline unlock for email.
func (c *Cache) PutUnlock(email, userID string, salt, verifier []byte) error {
	data, err := json.Marshal(unlockEntry{UserID: userID, Salt: salt, Verifier: verifier})
	if err != nil {
		return fmt.Errorf("marshal unlock entry: %w", err)
	}
	return c.d.Write(unlockKey(email), data)
}

// GetUnlock returns the offline-unlock material for email, or
// common.ErrNotFound.
func (c *Cache) GetUnlock(email string) (userID string, salt, verifier []byte, err error) {
	data, err := c.d.Read(unlockKey(email))
	if err != nil {
		return "", nil, nil, common.ErrNotFound
	}
	var e unlockEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", nil, nil, fmt.Errorf("corrupt unlock entry: %w", err)
	}
	return e.UserID, e.Salt, e.Verifier, nil
}
