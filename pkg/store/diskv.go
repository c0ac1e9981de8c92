package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/calscroll/pkg/dateutil"
	"tableflip.dev/calscroll/pkg/logging"
)

// ErrNotFound is returned when no session of that name has been saved.
var ErrNotFound = errors.New("store: session not found")

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Session is what calscroll remembers between runs of the same list.
type Session struct {
	Name string `json:"name"`
	// Month is the first month that was visible when the session was saved.
	Month dateutil.DateData `json:"month"`
	// Current is the current date the list was opened on.
	Current dateutil.DateData `json:"current"`
	Saved   time.Time         `json:"saved"`
}

// Persistence defines the persistence contract for sessions.
type Persistence interface {
	Session(ctx context.Context, name string) (*Session, error)
	Sessions(ctx context.Context) []*Session
	Store(s *Session) error
	Delete(name string) error
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const sessionBucket = "session"

func (p *persistence) read(key string) (*Session, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s := &Session{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if s.Name == "" {
		s.Name = fromName(keyToPathTransform(key).FileName)
	}
	return s, nil
}

func (p *persistence) Session(_ context.Context, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("store: session name required")
	}
	return p.read(toKey(name))
}

func (p *persistence) Sessions(ctx context.Context) []*Session {
	all := make([]*Session, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) == 0 || pk.Path[0] != sessionBucket {
			continue
		}
		s, err := p.read(key)
		if err != nil {
			logging.Error("store: skip session", err, "key", key)
			continue
		}
		all = append(all, s)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func (p *persistence) Store(s *Session) error {
	if s == nil {
		return errors.New("store: nil session")
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("store: session name required")
	}
	if s.Saved.IsZero() {
		s.Saved = time.Now()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(s.Name), data)
}

func (p *persistence) Delete(name string) error {
	err := p.d.Erase(toKey(strings.TrimSpace(name)))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `session-name`, with the name encoded so it never contains the
// separator or a path character.
func toKey(name string) string {
	return fmt.Sprintf("%s-%s", sessionBucket, toName(name))
}

func toName(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromName(s string) string {
	name, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromName: %s", err)
	}
	return string(name)
}
