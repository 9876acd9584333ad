package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mockgate/mockgate/adapters/memory"
	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

// BaseEndpointStore tests

func TestBaseEndpointStore_GetOrCreate(t *testing.T) {
	store := memory.New().BaseEndpoints()
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "api/v1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}

	again, err := store.GetOrCreate(ctx, "api/v1")
	if err != nil {
		t.Fatalf("GetOrCreate again failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second GetOrCreate id = %d, want %d", again.ID, first.ID)
	}

	other, _ := store.GetOrCreate(ctx, "api/v2")
	if other.ID == first.ID {
		t.Error("distinct endpoints share an id")
	}
}

func TestBaseEndpointStore_GetNotFound(t *testing.T) {
	store := memory.New().BaseEndpoints()

	_, err := store.Get(context.Background(), 99)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	}
}

func TestBaseEndpointStore_BulkCreatePreservesIDs(t *testing.T) {
	core := memory.New()
	store := core.BaseEndpoints()
	ctx := context.Background()

	rows := []endpoint.BaseEndpoint{
		{ID: 5, Endpoint: "api"},
		{ID: 9, Endpoint: "internal"},
	}
	if err := store.BulkCreate(ctx, rows); err != nil {
		t.Fatalf("BulkCreate failed: %v", err)
	}

	got, _ := store.Get(ctx, 9)
	if got.Endpoint != "internal" {
		t.Errorf("Get(9).Endpoint = %q, want internal", got.Endpoint)
	}

	// A later assignment must not collide with the imported ids.
	fresh, _ := store.GetOrCreate(ctx, "fresh")
	if fresh.ID <= 9 {
		t.Errorf("assigned id %d collides with imported id range", fresh.ID)
	}
}

// RelativeEndpointStore tests

func seedEndpoint(t *testing.T, core *memory.Store) endpoint.RelativeEndpoint {
	t.Helper()
	ctx := context.Background()

	base, err := core.BaseEndpoints().GetOrCreate(ctx, "api")
	if err != nil {
		t.Fatalf("seed base failed: %v", err)
	}
	e := endpoint.RelativeEndpoint{
		BaseEndpointID: base.ID,
		Endpoint:       "/users/{id}",
		Method:         endpoint.MethodGet,
		Regex:          `^/users/(?P<id>[^/]+)$`,
		MetaData:       "{}",
	}
	id, err := core.RelativeEndpoints().Create(ctx, e)
	if err != nil {
		t.Fatalf("seed endpoint failed: %v", err)
	}
	e.ID = id
	return e
}

func TestRelativeEndpointStore_FindByPathMethod(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	found, err := core.RelativeEndpoints().FindByPathMethod(ctx, e.BaseEndpointID, "/users/{id}", endpoint.MethodGet)
	if err != nil {
		t.Fatalf("FindByPathMethod failed: %v", err)
	}
	if found.ID != e.ID {
		t.Errorf("found id = %d, want %d", found.ID, e.ID)
	}

	_, err = core.RelativeEndpoints().FindByPathMethod(ctx, e.BaseEndpointID, "/users/{id}", endpoint.MethodPost)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("different method error = %v, want ErrNotFound", err)
	}
}

func TestRelativeEndpointStore_DeleteCascadesFields(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	err := core.Fields().BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "name", Kind: endpoint.KindValue, Value: "string"},
		{RelativeEndpointID: e.ID, Key: "uid", Kind: endpoint.KindURLParam, Value: "id"},
	})
	if err != nil {
		t.Fatalf("BulkCreate fields failed: %v", err)
	}

	if err := core.RelativeEndpoints().Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	fields, _ := core.Fields().List(ctx)
	if len(fields) != 0 {
		t.Errorf("expected owned fields removed, %d remain", len(fields))
	}
}

func TestRelativeEndpointStore_Update(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	err := core.RelativeEndpoints().Update(ctx, e.ID, "/accounts/{id}", endpoint.MethodPut, `^/accounts/(?P<id>[^/]+)$`)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := core.RelativeEndpoints().Get(ctx, e.ID)
	if got.Endpoint != "/accounts/{id}" || got.Method != endpoint.MethodPut {
		t.Errorf("updated endpoint = %+v", got)
	}
	if got.MetaData != "{}" {
		t.Errorf("meta data changed by Update: %q", got.MetaData)
	}
}

// FieldStore tests

func TestFieldStore_DeleteAbsent(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	core.Fields().BulkCreate(ctx, []endpoint.Field{
		{ID: 1, RelativeEndpointID: e.ID, Key: "a", Kind: endpoint.KindQueryParam, Value: "x"},
		{ID: 2, RelativeEndpointID: e.ID, Key: "b", Kind: endpoint.KindQueryParam, Value: "y"},
		{ID: 3, RelativeEndpointID: e.ID, Key: "c", Kind: endpoint.KindQueryParam, Value: "z"},
	})

	if err := core.Fields().DeleteAbsent(ctx, e.ID, []int64{2}); err != nil {
		t.Fatalf("DeleteAbsent failed: %v", err)
	}

	remaining, _ := core.Fields().ListByEndpoint(ctx, e.ID)
	if len(remaining) != 1 || remaining[0].ID != 2 {
		t.Errorf("remaining fields = %+v, want only id 2", remaining)
	}
}

func TestFieldStore_BulkCreateAssignsZeroIDs(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	err := core.Fields().BulkCreate(ctx, []endpoint.Field{
		{RelativeEndpointID: e.ID, Key: "a", Kind: endpoint.KindQueryParam, Value: "x"},
		{RelativeEndpointID: e.ID, Key: "b", Kind: endpoint.KindQueryParam, Value: "y"},
	})
	if err != nil {
		t.Fatalf("BulkCreate failed: %v", err)
	}

	fields, _ := core.Fields().ListByEndpoint(ctx, e.ID)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].ID == 0 || fields[1].ID == 0 || fields[0].ID == fields[1].ID {
		t.Errorf("ids not assigned distinctly: %d, %d", fields[0].ID, fields[1].ID)
	}
}

// SchemaStore tests

func TestSchemaStore_CreateAndLookups(t *testing.T) {
	store := memory.New().Schemas()
	ctx := context.Background()

	id, err := store.Create(ctx, "person")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byName, err := store.GetByName(ctx, "person")
	if err != nil || byName.ID != id {
		t.Errorf("GetByName = %+v, %v", byName, err)
	}

	ok, _ := store.Exists(ctx, "person")
	if !ok {
		t.Error("Exists(person) = false")
	}
	ok, _ = store.Exists(ctx, "company")
	if ok {
		t.Error("Exists(company) = true")
	}

	if _, err := store.Create(ctx, "person"); !errors.Is(err, ports.ErrDuplicate) {
		t.Errorf("duplicate Create error = %v, want ErrDuplicate", err)
	}
}

func TestSchemaStore_ListNames(t *testing.T) {
	store := memory.New().Schemas()
	ctx := context.Background()

	store.Create(ctx, "person")
	store.Create(ctx, "address")

	names, err := store.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 2 || names[0] != "person" || names[1] != "address" {
		t.Errorf("names = %v, want [person address] in creation order", names)
	}
}

// Transactor tests

func TestStore_InTxRollsBackAllEntities(t *testing.T) {
	core := memory.New()
	e := seedEndpoint(t, core)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := core.InTx(ctx, func(txCtx context.Context) error {
		if _, err := core.Schemas().Create(txCtx, "person"); err != nil {
			return err
		}
		if err := core.Fields().BulkCreate(txCtx, []endpoint.Field{
			{RelativeEndpointID: e.ID, Key: "a", Kind: endpoint.KindQueryParam, Value: "x"},
		}); err != nil {
			return err
		}
		if err := core.SchemaData().BulkCreate(txCtx, []schema.Data{
			{SchemaID: 1, Key: "name", Kind: "value", Primitive: "string"},
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("InTx error = %v, want sentinel", err)
	}

	if names, _ := core.Schemas().ListNames(ctx); len(names) != 0 {
		t.Errorf("schemas survived rollback: %v", names)
	}
	if fields, _ := core.Fields().List(ctx); len(fields) != 0 {
		t.Errorf("fields survived rollback: %+v", fields)
	}
	if data, _ := core.SchemaData().List(ctx); len(data) != 0 {
		t.Errorf("schema data survived rollback: %+v", data)
	}
}

func TestStore_InTxCommits(t *testing.T) {
	core := memory.New()
	ctx := context.Background()

	err := core.InTx(ctx, func(txCtx context.Context) error {
		_, err := core.Schemas().Create(txCtx, "person")
		return err
	})
	if err != nil {
		t.Fatalf("InTx failed: %v", err)
	}

	if ok, _ := core.Schemas().Exists(ctx, "person"); !ok {
		t.Error("committed schema missing")
	}
}

func TestStore_InTxJoinsAmbientTransaction(t *testing.T) {
	core := memory.New()
	ctx := context.Background()

	sentinel := errors.New("outer failure")
	err := core.InTx(ctx, func(outer context.Context) error {
		// Inner InTx joins; its writes must roll back with the outer one.
		if err := core.InTx(outer, func(inner context.Context) error {
			_, err := core.Schemas().Create(inner, "person")
			return err
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("InTx error = %v, want sentinel", err)
	}

	if ok, _ := core.Schemas().Exists(ctx, "person"); ok {
		t.Error("inner transaction escaped the outer rollback")
	}
}
