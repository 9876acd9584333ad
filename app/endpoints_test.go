package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mockgate/mockgate/adapters/memory"
	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/fault"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

func newTestStores() ports.Stores {
	return memory.New().Stores()
}

func boolPtr(b bool) *bool {
	return &b
}

func TestEndpointService_AddBase(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	be, err := svc.AddBase(ctx, "/api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	if be.Endpoint != "api/v1" {
		t.Errorf("Endpoint = %s, want api/v1 (leading slash stripped)", be.Endpoint)
	}

	again, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base again: %v", err)
	}
	if again.ID != be.ID {
		t.Errorf("second ID = %d, want %d", again.ID, be.ID)
	}
}

func TestEndpointService_AddRelative(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	base, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}

	created, err := svc.AddRelative(ctx, base.ID, "users/{id}/", "GET")
	if err != nil {
		t.Fatalf("add relative: %v", err)
	}
	if created.Endpoint != "/users/{id}" {
		t.Errorf("Endpoint = %s, want /users/{id}", created.Endpoint)
	}
	if created.Regex != `^/users/(?P<id>[^/]+)$` {
		t.Errorf("Regex = %s", created.Regex)
	}
	if created.MetaData != "{}" {
		t.Errorf("MetaData = %s, want {}", created.MetaData)
	}
	if params := created.URLParams(); len(params) != 1 || params[0] != "id" {
		t.Errorf("URLParams = %v, want [id]", params)
	}
}

func TestEndpointService_AddRelativeRejections(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	base, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	if _, err := svc.AddRelative(ctx, base.ID, "/users", "GET"); err != nil {
		t.Fatalf("seed endpoint: %v", err)
	}

	tests := []struct {
		name    string
		baseID  int64
		path    string
		method  string
		wantMsg string
	}{
		{
			name:    "unknown method",
			baseID:  base.ID,
			path:    "/users",
			method:  "FETCH",
			wantMsg: "Please enter valid method, i.e. one of GET, POST, PUT, PATCH, DELETE",
		},
		{
			name:    "duplicate triple",
			baseID:  base.ID,
			path:    "/users",
			method:  "GET",
			wantMsg: "Endpoint with same method already exists",
		},
		{
			name:    "empty path",
			baseID:  base.ID,
			path:    "/",
			method:  "GET",
			wantMsg: "Please enter a valid endpoint",
		},
		{
			name:    "malformed placeholder",
			baseID:  base.ID,
			path:    "/users/{id",
			method:  "GET",
			wantMsg: "Invalid url param syntax in segment '{id'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddRelative(ctx, tt.baseID, tt.path, tt.method)
			if !fault.IsNotAllowed(err) {
				t.Fatalf("err = %v, want not-allowed", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}

	t.Run("same path other method is fine", func(t *testing.T) {
		if _, err := svc.AddRelative(ctx, base.ID, "/users", "POST"); err != nil {
			t.Errorf("add with other method: %v", err)
		}
	})

	t.Run("unknown base endpoint", func(t *testing.T) {
		_, err := svc.AddRelative(ctx, 999, "/users", "GET")
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestEndpointService_UpdateRelative(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	base, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	first, err := svc.AddRelative(ctx, base.ID, "/users", "GET")
	if err != nil {
		t.Fatalf("add relative: %v", err)
	}
	second, err := svc.AddRelative(ctx, base.ID, "/orders", "GET")
	if err != nil {
		t.Fatalf("add relative: %v", err)
	}

	t.Run("rewrites path method and regex", func(t *testing.T) {
		if err := svc.UpdateRelative(ctx, first.ID, "accounts/{name}", "PUT"); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := stores.RelativeEndpoints.Get(ctx, first.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Endpoint != "/accounts/{name}" {
			t.Errorf("Endpoint = %s, want /accounts/{name}", got.Endpoint)
		}
		if got.Method != endpoint.MethodPut {
			t.Errorf("Method = %s, want PUT", got.Method)
		}
		if got.Regex != `^/accounts/(?P<name>[^/]+)$` {
			t.Errorf("Regex = %s", got.Regex)
		}
		if got.MetaData != "{}" {
			t.Errorf("MetaData = %s, want untouched {}", got.MetaData)
		}
	})

	t.Run("collision with different row", func(t *testing.T) {
		err := svc.UpdateRelative(ctx, second.ID, "/accounts/{name}", "PUT")
		if !fault.IsNotAllowed(err) {
			t.Fatalf("err = %v, want not-allowed", err)
		}
		if err.Error() != "Endpoint with same url exists" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("rewriting a row to its own values is fine", func(t *testing.T) {
		if err := svc.UpdateRelative(ctx, second.ID, "/orders", "GET"); err != nil {
			t.Errorf("self update: %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.UpdateRelative(ctx, 999, "/x", "GET")
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		err := svc.UpdateRelative(ctx, second.ID, "/orders", "COPY")
		if !fault.IsNotAllowed(err) {
			t.Errorf("err = %v, want not-allowed", err)
		}
	})
}

func TestEndpointService_DeleteRelative(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	base, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	created, err := svc.AddRelative(ctx, base.ID, "/users", "GET")
	if err != nil {
		t.Fatalf("add relative: %v", err)
	}
	_, err = svc.UpdateFields(ctx, created.ID, []app.FieldPatch{
		{Key: "name", Type: "VALUE", Value: "string", IsChanged: boolPtr(false)},
	}, "{}")
	if err != nil {
		t.Fatalf("seed field: %v", err)
	}

	if err := svc.DeleteRelative(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	fields, err := stores.Fields.ListByEndpoint(ctx, created.ID)
	if err != nil {
		t.Fatalf("list fields: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("len(fields) = %d, want 0 after cascade", len(fields))
	}

	if err := svc.DeleteRelative(ctx, created.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEndpointService_ListRelative(t *testing.T) {
	stores := newTestStores()
	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	base, err := svc.AddBase(ctx, "api/v1")
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	created, err := svc.AddRelative(ctx, base.ID, "/users/{id}", "GET")
	if err != nil {
		t.Fatalf("add relative: %v", err)
	}
	_, err = svc.UpdateFields(ctx, created.ID, []app.FieldPatch{
		{Key: "user_id", Type: "URL_PARAM", Value: "id", IsChanged: boolPtr(false)},
	}, `{"status_code": 200}`)
	if err != nil {
		t.Fatalf("seed field: %v", err)
	}

	details, err := svc.ListRelative(ctx, base.ID)
	if err != nil {
		t.Fatalf("list relative: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("len(details) = %d, want 1", len(details))
	}

	d := details[0]
	if d.BaseEndpoint != base.ID {
		t.Errorf("BaseEndpoint = %d, want %d", d.BaseEndpoint, base.ID)
	}
	if len(d.URLParams) != 1 || d.URLParams[0] != "id" {
		t.Errorf("URLParams = %v, want [id]", d.URLParams)
	}
	if len(d.Fields) != 1 || d.Fields[0].Key != "user_id" || d.Fields[0].Type != "URL_PARAM" {
		t.Errorf("Fields = %+v", d.Fields)
	}
	if string(d.MetaData) != `{"status_code": 200}` {
		t.Errorf("MetaData = %s", d.MetaData)
	}

	t.Run("unknown base yields empty list", func(t *testing.T) {
		details, err := svc.ListRelative(ctx, 999)
		if err != nil {
			t.Fatalf("list relative: %v", err)
		}
		if len(details) != 0 {
			t.Errorf("len(details) = %d, want 0", len(details))
		}
	})
}
