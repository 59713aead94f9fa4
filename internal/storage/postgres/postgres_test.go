package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета postgres:
// — поднимают PostgreSQL через testcontainers-go (postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    SaveUser/UserByEmail: вставку, ErrAlreadyExists на дубль email, ErrNotFound;
//    LinkUserToInstrument: создание инструмента и связи, идемпотентность, ErrNotFound;
//    InstrumentsByUser: выдачу только своих инструментов;
//    DeleteUserByEmail + DeleteOrphanedInstruments: удаление только сирот;
//    поведение при истёкшем контексте.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — корень репозитория относительно файла тестов.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting postgres container with image=%q", req.Image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		pool, err = pgxpool.New(ctx, dsn)
		return err == nil && pool.Ping(ctx) == nil
	}, 30*time.Second, 500*time.Millisecond)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_instruments.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	return st
}

func mustUser(t *testing.T, st *Storage, email string) *models.User {
	t.Helper()
	u, err := st.SaveUser(context.Background(), &models.User{Email: email, Active: true})
	require.NoError(t, err)
	return u
}

func TestIntegration_SaveUser_And_UserByEmail(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	saved := mustUser(t, st, "player@example.com")
	require.NotZero(t, saved.ID)
	require.True(t, saved.Active)
	require.WithinDuration(t, time.Now().UTC(), saved.DateCreated, 5*time.Second)

	got, err := st.UserByEmail(ctx, "player@example.com")
	require.NoError(t, err)
	require.Equal(t, saved, got)

	_, err = st.SaveUser(ctx, &models.User{Email: "player@example.com"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = st.UserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_LinkUserToInstrument(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	u := mustUser(t, st, "a@example.com")

	inst, err := st.LinkUserToInstrument(ctx, u.ID, &models.Instrument{Type: "electric_guitar", Make: "Fender", Model: "Telecaster"})
	require.NoError(t, err)
	require.NotZero(t, inst.ID)

	got, err := st.InstrumentByID(ctx, inst.ID)
	require.NoError(t, err)
	require.Equal(t, inst, got)

	// Повторная связь существующего инструмента — no-op.
	again, err := st.LinkUserToInstrument(ctx, u.ID, &models.Instrument{ID: inst.ID})
	require.NoError(t, err)
	require.Equal(t, inst.ID, again.ID)

	list, err := st.InstrumentsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = st.LinkUserToInstrument(ctx, u.ID, &models.Instrument{ID: 999999})
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Отсутствующий пользователь: транзакция откатывается, инструмент не создаётся.
	_, err = st.LinkUserToInstrument(ctx, 999999, &models.Instrument{Type: "bass", Make: "Music Man", Model: "StingRay"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	n, err := st.DeleteOrphanedInstruments(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = st.InstrumentByID(ctx, 999999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_InstrumentsByUser_Isolation(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	a := mustUser(t, st, "a@example.com")
	b := mustUser(t, st, "b@example.com")

	_, err := st.LinkUserToInstrument(ctx, a.ID, &models.Instrument{Type: "acoustic_guitar", Make: "Martin", Model: "D-28"})
	require.NoError(t, err)
	shared, err := st.LinkUserToInstrument(ctx, a.ID, &models.Instrument{Type: "electric_guitar", Make: "Gibson", Model: "Les Paul"})
	require.NoError(t, err)
	_, err = st.LinkUserToInstrument(ctx, b.ID, shared)
	require.NoError(t, err)

	listA, err := st.InstrumentsByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listA, 2)
	require.Less(t, listA[0].ID, listA[1].ID)

	listB, err := st.InstrumentsByUser(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, "Les Paul", listB[0].Model)

	empty, err := st.InstrumentsByUser(ctx, 999999)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestIntegration_DeleteUser_PrunesOnlyOrphans(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	a := mustUser(t, st, "a@example.com")
	b := mustUser(t, st, "b@example.com")

	own, err := st.LinkUserToInstrument(ctx, a.ID, &models.Instrument{Type: "acoustic_guitar", Make: "Taylor", Model: "814ce"})
	require.NoError(t, err)
	shared, err := st.LinkUserToInstrument(ctx, a.ID, &models.Instrument{Type: "electric_guitar", Make: "PRS", Model: "Custom 24"})
	require.NoError(t, err)
	_, err = st.LinkUserToInstrument(ctx, b.ID, shared)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUserByEmail(ctx, "a@example.com"))
	require.ErrorIs(t, st.DeleteUserByEmail(ctx, "a@example.com"), storage.ErrNotFound)

	n, err := st.DeleteOrphanedInstruments(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = st.InstrumentByID(ctx, own.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.InstrumentByID(ctx, shared.ID)
	require.NoError(t, err)
}

func TestIntegration_ContextDeadline(t *testing.T) {
	st := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := st.UserByEmail(ctx, "a@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
