package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"courtside/config"
	"courtside/internal/domain/entity"
	"courtside/internal/domain/repository"
	"courtside/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Secret:               "test-secret",
		TokenTTL:             time.Hour,
		SessionLookupTimeout: time.Second,
		AdminSessionPolicy:   config.SessionPolicyLenient,
		PlayerSessionPolicy:  config.SessionPolicyStrict,
	}
}

// fakeHasher is a deterministic stand-in for bcrypt so tests stay fast.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues unique opaque strings; Verify is table-driven.
type fakeTokenService struct {
	counter  int
	issueErr error
	claims   map[string]*service.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{claims: make(map[string]*service.Claims)}
}

func (s *fakeTokenService) Issue(actorID uuid.UUID, kind entity.ActorKind, email string) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	s.counter++
	token := fmt.Sprintf("token-%s-%d", actorID, s.counter)
	s.claims[token] = &service.Claims{ActorID: actorID, Kind: kind, Email: email}

	return token, nil
}

func (s *fakeTokenService) Verify(tokenString string) (*service.Claims, error) {
	if claims, ok := s.claims[tokenString]; ok {
		return claims, nil
	}

	return nil, fmt.Errorf("unknown test token %q", tokenString)
}

// fakeAdminUserRepo keeps admin users in memory.
type fakeAdminUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.AdminUser
	findErr error
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{byID: make(map[uuid.UUID]*entity.AdminUser)}
}

func (r *fakeAdminUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if user, ok := r.byID[id]; ok {
		return user, nil
	}

	return nil, repository.ErrActorNotFound
}

func (r *fakeAdminUserRepo) FindByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.byID {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return nil, repository.ErrActorNotFound
}

func (r *fakeAdminUserRepo) Create(_ context.Context, user *entity.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byID[user.ID] = user

	return nil
}

func (r *fakeAdminUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)

	return nil
}

// fakePlayerRepo keeps players in memory.
type fakePlayerRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.Player
	findErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{byID: make(map[uuid.UUID]*entity.Player)}
}

func (r *fakePlayerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if player, ok := r.byID[id]; ok {
		return player, nil
	}

	return nil, repository.ErrActorNotFound
}

func (r *fakePlayerRepo) FindByEmail(_ context.Context, email string) (*entity.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, player := range r.byID {
		if strings.EqualFold(player.Email, email) {
			return player, nil
		}
	}

	return nil, repository.ErrActorNotFound
}

func (r *fakePlayerRepo) Create(_ context.Context, player *entity.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	r.byID[player.ID] = player

	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)

	return nil
}

// fakeCredentialRepo keeps one credential per owner in memory.
type fakeCredentialRepo struct {
	mu        sync.Mutex
	byOwner   map[uuid.UUID]*entity.Credential
	createErr error
	findErr   error
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byOwner: make(map[uuid.UUID]*entity.Credential)}
}

func (r *fakeCredentialRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (*entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if cred, ok := r.byOwner[ownerID]; ok {
		return cred, nil
	}

	return nil, repository.ErrCredentialNotFound
}

func (r *fakeCredentialRepo) Create(_ context.Context, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byOwner[cred.OwnerID]; ok {
		return repository.ErrCredentialExists
	}
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	r.byOwner[cred.OwnerID] = cred

	return nil
}

func (r *fakeCredentialRepo) Upsert(_ context.Context, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	r.byOwner[cred.OwnerID] = cred

	return nil
}

func (r *fakeCredentialRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byOwner, ownerID)

	return nil
}

// fakeSessionRepo keeps sessions in memory, keyed by token string.
type fakeSessionRepo struct {
	mu        sync.Mutex
	byToken   map[string]*entity.Session
	createErr error
	findErr   error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.byToken[session.AccessToken] = session

	return nil
}

func (r *fakeSessionRepo) FindByToken(_ context.Context, accessToken string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if session, ok := r.byToken[accessToken]; ok {
		return session, nil
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) FindByTokenAndOwner(_ context.Context, accessToken string, ownerID uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if session, ok := r.byToken[accessToken]; ok && session.OwnerID == ownerID {
		return session, nil
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeactivateByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.byToken {
		if session.OwnerID == ownerID {
			session.IsActive = false
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, session := range r.byToken {
		if session.OwnerID == ownerID {
			delete(r.byToken, token)
		}
	}

	return nil
}

func (r *fakeSessionRepo) countByOwner(ownerID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, session := range r.byToken {
		if session.OwnerID == ownerID {
			n++
		}
	}

	return n
}

// fakeFactory implements repository.RepositoryFactory over the fakes. The
// fakes ignore transaction boundaries, which is fine for orchestration tests.
type fakeFactory struct {
	adminUsers        *fakeAdminUserRepo
	players           *fakePlayerRepo
	adminCredentials  *fakeCredentialRepo
	playerCredentials *fakeCredentialRepo
	adminSessions     *fakeSessionRepo
	playerSessions    *fakeSessionRepo
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		adminUsers:        newFakeAdminUserRepo(),
		players:           newFakePlayerRepo(),
		adminCredentials:  newFakeCredentialRepo(),
		playerCredentials: newFakeCredentialRepo(),
		adminSessions:     newFakeSessionRepo(),
		playerSessions:    newFakeSessionRepo(),
	}
}

func (f *fakeFactory) AdminUsers() repository.AdminUserRepository        { return f.adminUsers }
func (f *fakeFactory) Players() repository.PlayerRepository              { return f.players }
func (f *fakeFactory) AdminCredentials() repository.CredentialRepository { return f.adminCredentials }
func (f *fakeFactory) PlayerCredentials() repository.CredentialRepository {
	return f.playerCredentials
}
func (f *fakeFactory) AdminSessions() repository.SessionRepository  { return f.adminSessions }
func (f *fakeFactory) PlayerSessions() repository.SessionRepository { return f.playerSessions }

// fakeTxManager runs the closure against the shared fakes without any real
// transaction semantics.
type fakeTxManager struct {
	factory *fakeFactory
	execErr error
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.execErr != nil {
		return m.execErr
	}

	return fn(m.factory)
}

// fakePublisher records published events in order.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.AuthEvent
	pubErr error
}

func (p *fakePublisher) PublishAuthEvent(_ context.Context, event *service.AuthEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pubErr != nil {
		return p.pubErr
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) eventNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.events))
	for _, event := range p.events {
		names = append(names, event.Event)
	}

	return names
}
