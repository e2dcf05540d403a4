package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"cev_portal_backend/internal/clients/repository"
	"cev_portal_backend/internal/clients/transport"
	"cev_portal_backend/internal/events"
	"cev_portal_backend/platform/apperr"
	"cev_portal_backend/platform/logger"
)

// fakeRepo is an in-memory clients Repository for service tests. It also
// tracks the projects owned by each client, and the walls and certification
// records owned by each project, so tests can observe the storage-level
// cascade a client delete triggers.
type fakeRepo struct {
	clients          map[uuid.UUID]repository.Client
	projectsByClient map[uuid.UUID][]uuid.UUID
	wallsByProject   map[uuid.UUID]int
	certsByProject   map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:          make(map[uuid.UUID]repository.Client),
		projectsByClient: make(map[uuid.UUID][]uuid.UUID),
		wallsByProject:   make(map[uuid.UUID]int),
		certsByProject:   make(map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Client, error) {
	cl, ok := f.clients[id]
	if !ok {
		return repository.Client{}, apperr.NotFound("client not found")
	}
	return cl, nil
}

func (f *fakeRepo) List(_ context.Context) ([]repository.Client, error) {
	var out []repository.Client
	for _, cl := range f.clients {
		out = append(out, cl)
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Client, error) {
	for _, existing := range f.clients {
		if existing.Contact == params.Contact {
			return repository.Client{}, apperr.Conflict("a client with this contact already exists")
		}
	}
	cl := repository.Client{ID: uuid.New(), Name: params.Name, Contact: params.Contact}
	f.clients[cl.ID] = cl
	return cl, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Client, error) {
	cl, ok := f.clients[params.ID]
	if !ok {
		return repository.Client{}, apperr.NotFound("client not found")
	}
	if params.Name != nil {
		cl.Name = *params.Name
	}
	if params.Contact != nil {
		cl.Contact = *params.Contact
	}
	f.clients[params.ID] = cl
	return cl, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.clients[id]; !ok {
		return apperr.NotFound("client not found")
	}
	// Mirror the schema's ON DELETE CASCADE: the client's projects go, and
	// with each project its walls and certification record.
	for _, projectID := range f.projectsByClient[id] {
		delete(f.wallsByProject, projectID)
		delete(f.certsByProject, projectID)
	}
	delete(f.projectsByClient, id)
	delete(f.clients, id)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.EventName()
	}
	return out
}

func newTestService(repo repository.Repository) (*Service, *recordingBus) {
	bus := &recordingBus{}
	return New(repo, bus, logger.New("test")), bus
}

func TestCreateClientPublishesEvent(t *testing.T) {
	svc, bus := newTestService(newFakeRepo())

	cl, err := svc.Create(context.Background(), transport.CreateClientRequest{
		Name:    "ACME",
		Contact: "office@acme.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cl.Name != "ACME" {
		t.Fatalf("name = %q, want ACME", cl.Name)
	}

	names := bus.names()
	if len(names) != 1 || names[0] != "client.changed" {
		t.Fatalf("published events = %v, want [client.changed]", names)
	}
}

func TestCreateClientDuplicateContactConflicts(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	req := transport.CreateClientRequest{Name: "ACME", Contact: "office@acme.example"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second Create() error = %v, want conflict", err)
	}
}

func TestDeleteClientPublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)

	cl, err := svc.Create(context.Background(), transport.CreateClientRequest{
		Name:    "ACME",
		Contact: "office@acme.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), cl.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	names := bus.names()
	if len(names) != 2 || names[1] != "client.changed" {
		t.Fatalf("published events = %v, want two client.changed", names)
	}
}

func TestDeleteClientCascadesToProjects(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	cl, err := svc.Create(context.Background(), transport.CreateClientRequest{
		Name:    "ACME",
		Contact: "office@acme.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Two projects: one with walls and a certification, one with walls only.
	certified := uuid.New()
	inProgress := uuid.New()
	repo.projectsByClient[cl.ID] = []uuid.UUID{certified, inProgress}
	repo.wallsByProject[certified] = 3
	repo.wallsByProject[inProgress] = 1
	repo.certsByProject[certified] = true

	// An unrelated client's project must survive.
	other, err := svc.Create(context.Background(), transport.CreateClientRequest{
		Name:    "Umbrella",
		Contact: "office@umbrella.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	otherProject := uuid.New()
	repo.projectsByClient[other.ID] = []uuid.UUID{otherProject}
	repo.wallsByProject[otherProject] = 2

	if err := svc.Delete(context.Background(), cl.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, ok := repo.projectsByClient[cl.ID]; ok {
		t.Fatal("deleted client's projects must be gone")
	}
	if _, ok := repo.wallsByProject[certified]; ok {
		t.Fatal("walls of the certified project must be gone")
	}
	if _, ok := repo.wallsByProject[inProgress]; ok {
		t.Fatal("walls of the in-progress project must be gone")
	}
	if _, ok := repo.certsByProject[certified]; ok {
		t.Fatal("certification record must be gone")
	}

	if repo.wallsByProject[otherProject] != 2 {
		t.Fatal("unrelated client's project data must survive")
	}
	if _, err := svc.GetByID(context.Background(), other.ID); err != nil {
		t.Fatalf("unrelated client must survive, got error %v", err)
	}
}

func TestDeleteClientNotFound(t *testing.T) {
	svc, bus := newTestService(newFakeRepo())

	err := svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Delete() error = %v, want not found", err)
	}
	if len(bus.names()) != 0 {
		t.Fatal("no event must be published for a failed delete")
	}
}

func TestUpdateClientPartial(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	cl, err := svc.Create(context.Background(), transport.CreateClientRequest{
		Name:    "ACME",
		Contact: "office@acme.example",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newName := "ACME Ltd"
	updated, err := svc.Update(context.Background(), cl.ID, transport.UpdateClientRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "ACME Ltd" {
		t.Fatalf("name = %q, want ACME Ltd", updated.Name)
	}
	if updated.Contact != "office@acme.example" {
		t.Fatalf("contact = %q, must be unchanged", updated.Contact)
	}
}
