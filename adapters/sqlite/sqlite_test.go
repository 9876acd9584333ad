package sqlite_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/mockgate/mockgate/adapters/sqlite"
	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

func setupTestDB(t *testing.T) (*sqlite.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "mockgate-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}

	return db, cleanup
}

func seedEndpoint(t *testing.T, db *sqlite.DB) endpoint.RelativeEndpoint {
	t.Helper()
	ctx := context.Background()

	base, err := sqlite.NewBaseEndpointStore(db).GetOrCreate(ctx, "api/v1")
	if err != nil {
		t.Fatalf("create base endpoint: %v", err)
	}

	store := sqlite.NewRelativeEndpointStore(db)
	id, err := store.Create(ctx, endpoint.RelativeEndpoint{
		BaseEndpointID: base.ID,
		Endpoint:       "/users/{id}",
		Method:         endpoint.MethodGet,
		Regex:          `^/users/(?P<id>[^/]+)$`,
		MetaData:       "{}",
	})
	if err != nil {
		t.Fatalf("create relative endpoint: %v", err)
	}

	e, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get relative endpoint: %v", err)
	}
	return e
}

// -----------------------------------------------------------------------------
// BaseEndpointStore Tests
// -----------------------------------------------------------------------------

func TestBaseEndpointStore_GetOrCreate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewBaseEndpointStore(db)
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "api/v1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if first.Endpoint != "api/v1" {
		t.Errorf("Endpoint = %s, want api/v1", first.Endpoint)
	}

	second, err := store.GetOrCreate(ctx, "api/v1")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second ID = %d, want %d", second.ID, first.ID)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(all) = %d, want 1", len(all))
	}
}

func TestBaseEndpointStore_GetNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := sqlite.NewBaseEndpointStore(db).Get(context.Background(), 999)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBaseEndpointStore_BulkCreatePreservesIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewBaseEndpointStore(db)
	ctx := context.Background()

	rows := []endpoint.BaseEndpoint{
		{ID: 10, Endpoint: "api/v1"},
		{ID: 25, Endpoint: "api/v2"},
	}
	if err := store.BulkCreate(ctx, rows); err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	got, err := store.Get(ctx, 25)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Endpoint != "api/v2" {
		t.Errorf("Endpoint = %s, want api/v2", got.Endpoint)
	}

	// New rows must not collide with imported ids.
	created, err := store.GetOrCreate(ctx, "api/v3")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if created.ID <= 25 {
		t.Errorf("new ID = %d, want > 25", created.ID)
	}
}

// -----------------------------------------------------------------------------
// RelativeEndpointStore Tests
// -----------------------------------------------------------------------------

func TestRelativeEndpointStore_CreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)

	if e.Endpoint != "/users/{id}" {
		t.Errorf("Endpoint = %s, want /users/{id}", e.Endpoint)
	}
	if e.Method != endpoint.MethodGet {
		t.Errorf("Method = %s, want GET", e.Method)
	}
	if e.Regex != `^/users/(?P<id>[^/]+)$` {
		t.Errorf("Regex = %s", e.Regex)
	}
	if e.MetaData != "{}" {
		t.Errorf("MetaData = %s, want {}", e.MetaData)
	}
}

func TestRelativeEndpointStore_DuplicateTriple(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewRelativeEndpointStore(db)
	ctx := context.Background()

	_, err := store.Create(ctx, endpoint.RelativeEndpoint{
		BaseEndpointID: e.BaseEndpointID,
		Endpoint:       e.Endpoint,
		Method:         e.Method,
		Regex:          e.Regex,
		MetaData:       "{}",
	})
	if !errors.Is(err, ports.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}

	// Same path under a different method is a different endpoint.
	if _, err := store.Create(ctx, endpoint.RelativeEndpoint{
		BaseEndpointID: e.BaseEndpointID,
		Endpoint:       e.Endpoint,
		Method:         endpoint.MethodPost,
		Regex:          e.Regex,
		MetaData:       "{}",
	}); err != nil {
		t.Fatalf("create with other method: %v", err)
	}
}

func TestRelativeEndpointStore_FindByPathMethod(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewRelativeEndpointStore(db)
	ctx := context.Background()

	got, err := store.FindByPathMethod(ctx, e.BaseEndpointID, e.Endpoint, e.Method)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("ID = %d, want %d", got.ID, e.ID)
	}

	_, err = store.FindByPathMethod(ctx, e.BaseEndpointID, e.Endpoint, endpoint.MethodDelete)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRelativeEndpointStore_UpdateLeavesMetaData(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewRelativeEndpointStore(db)
	ctx := context.Background()

	if err := store.UpdateMetaData(ctx, e.ID, `{"status_code": 201}`); err != nil {
		t.Fatalf("update meta data: %v", err)
	}

	if err := store.Update(ctx, e.ID, "/users", endpoint.MethodPost, "^/users$"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Endpoint != "/users" {
		t.Errorf("Endpoint = %s, want /users", got.Endpoint)
	}
	if got.Method != endpoint.MethodPost {
		t.Errorf("Method = %s, want POST", got.Method)
	}
	if got.MetaData != `{"status_code": 201}` {
		t.Errorf("MetaData = %s, want preserved document", got.MetaData)
	}
}

func TestRelativeEndpointStore_UpdateNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewRelativeEndpointStore(db)
	err := store.Update(context.Background(), 999, "/x", endpoint.MethodGet, "^/x$")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRelativeEndpointStore_DeleteCascadesFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	fields := sqlite.NewFieldStore(db)
	ctx := context.Background()

	err := fields.BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "name", Kind: endpoint.KindValue, Value: "string"},
		{RelativeEndpointID: e.ID, Key: "age", Kind: endpoint.KindValue, Value: "number"},
	})
	if err != nil {
		t.Fatalf("bulk create fields: %v", err)
	}

	if err := sqlite.NewRelativeEndpointStore(db).Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete endpoint: %v", err)
	}

	left, err := fields.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list fields: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("len(left) = %d, want 0 after cascade", len(left))
	}
}

// -----------------------------------------------------------------------------
// FieldStore Tests
// -----------------------------------------------------------------------------

func TestFieldStore_BulkCreateAssignsIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewFieldStore(db)
	ctx := context.Background()

	err := store.BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "name", Kind: endpoint.KindValue, Value: "string"},
		{RelativeEndpointID: e.ID, Key: "tags", Kind: endpoint.KindValue, Value: "string", IsArray: true},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	got, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].ID == 0 || got[1].ID == 0 {
		t.Error("expected assigned ids")
	}
	if got[0].ID == got[1].ID {
		t.Error("expected distinct ids")
	}
	if !got[1].IsArray {
		t.Error("IsArray not persisted")
	}
}

func TestFieldStore_BulkCreatePreservesIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewFieldStore(db)
	ctx := context.Background()

	err := store.BulkCreate(ctx, []endpoint.Field{
		{ID: 42, RelativeEndpointID: e.ID, Key: "name", Kind: endpoint.KindValue, Value: "string"},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	got, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 42 {
		t.Fatalf("got = %+v, want single field with id 42", got)
	}
}

func TestFieldStore_DeleteAbsent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewFieldStore(db)
	ctx := context.Background()

	err := store.BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "a", Kind: endpoint.KindValue, Value: "string"},
		{RelativeEndpointID: e.ID, Key: "b", Kind: endpoint.KindValue, Value: "number"},
		{RelativeEndpointID: e.ID, Key: "c", Kind: endpoint.KindValue, Value: "boolean"},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	all, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := store.DeleteAbsent(ctx, e.ID, []int64{all[0].ID, all[2].ID}); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	left, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("len(left) = %d, want 2", len(left))
	}
	if left[0].Key != "a" || left[1].Key != "c" {
		t.Errorf("kept keys = %s, %s, want a, c", left[0].Key, left[1].Key)
	}

	// Empty keep list removes everything.
	if err := store.DeleteAbsent(ctx, e.ID, nil); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	left, err = store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("len(left) = %d, want 0", len(left))
	}
}

func TestFieldStore_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	e := seedEndpoint(t, db)
	store := sqlite.NewFieldStore(db)
	ctx := context.Background()

	err := store.BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "name", Kind: endpoint.KindValue, Value: "string"},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	all, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := store.Update(ctx, all[0].ID, "names", endpoint.KindValue, "string", true); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.ListByEndpoint(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Key != "names" || !got[0].IsArray {
		t.Errorf("got = %+v, want renamed array field", got[0])
	}

	if err := store.Update(ctx, 999, "x", endpoint.KindValue, "string", false); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// -----------------------------------------------------------------------------
// SchemaStore Tests
// -----------------------------------------------------------------------------

func TestSchemaStore_CreateAndLookups(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewSchemaStore(db)
	ctx := context.Background()

	id, err := store.Create(ctx, "User")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if byID.Name != "User" {
		t.Errorf("Name = %s, want User", byID.Name)
	}

	byName, err := store.GetByName(ctx, "User")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName.ID != id {
		t.Errorf("ID = %d, want %d", byName.ID, id)
	}

	ok, err := store.Exists(ctx, "User")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("Exists(User) = false, want true")
	}
	ok, err = store.Exists(ctx, "Missing")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("Exists(Missing) = true, want false")
	}
}

func TestSchemaStore_DuplicateName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewSchemaStore(db)
	ctx := context.Background()

	if _, err := store.Create(ctx, "User"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := store.Create(ctx, "User")
	if !errors.Is(err, ports.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestSchemaStore_ListNames(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewSchemaStore(db)
	ctx := context.Background()

	for _, name := range []string{"User", "Address", "Order"} {
		if _, err := store.Create(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	names, err := store.ListNames(ctx)
	if err != nil {
		t.Fatalf("list names: %v", err)
	}
	want := []string{"User", "Address", "Order"}
	if len(names) != len(want) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

// -----------------------------------------------------------------------------
// SchemaDataStore Tests
// -----------------------------------------------------------------------------

func TestSchemaDataStore_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	schemas := sqlite.NewSchemaStore(db)
	store := sqlite.NewSchemaDataStore(db)
	ctx := context.Background()

	userID, err := schemas.Create(ctx, "User")
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}
	addressID, err := schemas.Create(ctx, "Address")
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	err = store.BulkCreate(ctx, []schema.Data{
		{SchemaID: userID, Key: "name", Kind: "value", Primitive: "string"},
		{SchemaID: userID, Key: "active", Kind: "value", Primitive: "boolean"},
		{SchemaID: userID, Key: "address", Kind: schema.RefKind, RefID: addressID},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	got, err := store.ListBySchema(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}

	if got[0].Primitive != "string" || got[0].IsRef() {
		t.Errorf("got[0] = %+v, want string primitive", got[0])
	}
	if got[1].Primitive != "boolean" {
		t.Errorf("got[1].Primitive = %s, want boolean", got[1].Primitive)
	}
	if !got[2].IsRef() || got[2].RefID != addressID {
		t.Errorf("got[2] = %+v, want ref to %d", got[2], addressID)
	}
}

func TestSchemaDataStore_RejectsUnknownPrimitive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	schemas := sqlite.NewSchemaStore(db)
	store := sqlite.NewSchemaDataStore(db)
	ctx := context.Background()

	id, err := schemas.Create(ctx, "User")
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	err = store.BulkCreate(ctx, []schema.Data{
		{SchemaID: id, Key: "name", Kind: "value", Primitive: "uuid"},
	})
	if err == nil {
		t.Fatal("expected error for unknown primitive")
	}
}

// -----------------------------------------------------------------------------
// Transaction Tests
// -----------------------------------------------------------------------------

func TestInTx_RollbackOnError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	schemas := sqlite.NewSchemaStore(db)
	sentinel := errors.New("boom")

	err := db.InTx(context.Background(), func(ctx context.Context) error {
		if _, err := schemas.Create(ctx, "User"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	ok, err := schemas.Exists(context.Background(), "User")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("schema survived rollback")
	}
}

func TestInTx_Commit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	schemas := sqlite.NewSchemaStore(db)

	err := db.InTx(context.Background(), func(ctx context.Context) error {
		_, err := schemas.Create(ctx, "User")
		return err
	})
	if err != nil {
		t.Fatalf("in tx: %v", err)
	}

	ok, err := schemas.Exists(context.Background(), "User")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("schema not committed")
	}
}

func TestInTx_JoinsAmbientTransaction(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	schemas := sqlite.NewSchemaStore(db)
	sentinel := errors.New("boom")

	err := db.InTx(context.Background(), func(ctx context.Context) error {
		if _, err := schemas.Create(ctx, "User"); err != nil {
			return err
		}
		// Nested InTx joins the outer transaction instead of deadlocking
		// on a second connection-level transaction.
		if err := db.InTx(ctx, func(ctx context.Context) error {
			_, err := schemas.Create(ctx, "Address")
			return err
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	names, err := schemas.ListNames(context.Background())
	if err != nil {
		t.Fatalf("list names: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want none after outer rollback", names)
	}
}
