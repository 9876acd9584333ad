package endpoint_test

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/fault"
)

func TestFormat_Normalization(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"no leading slash", "users", "/users", false},
		{"single leading slash", "/users", "/users", false},
		{"double leading slash", "//users", "/users", false},
		{"trailing slash stripped", "users/", "/users", false},
		{"both slashes", "/users/", "/users", false},
		{"surrounding whitespace", "  /users ", "/users", false},
		{"nested path", "users/{id}/posts", "/users/{id}/posts", false},
		{"empty", "", "", true},
		{"only slash", "/", "", true},
		{"only slashes", "///", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := endpoint.Format(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Format(%q) expected error, got %q", tt.raw, got)
				}
				if !fault.IsNotAllowed(err) {
					t.Errorf("Format(%q) error = %v, want NotAllowed", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("normalized = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_MalformedPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		seg  string
	}{
		{"unclosed brace", "users/{id", "{id"},
		{"unopened brace", "users/id}", "id}"},
		{"empty name", "users/{}", "{}"},
		{"name with dash", "users/{user-id}", "{user-id}"},
		{"embedded placeholder", "users/x{id}", "x{id}"},
		{"digit-leading name", "users/{1id}", "{1id}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := endpoint.Format(tt.raw)
			if err == nil {
				t.Fatalf("Format(%q) expected error", tt.raw)
			}
			want := "Invalid url param syntax in segment '" + tt.seg + "'"
			if err.Error() != want {
				t.Errorf("error = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestFormat_LiteralRegexMatchesOnlyItself(t *testing.T) {
	paths := []string{"/users", "/api/v1/users", "/file.json", "/a+b"}

	for _, p := range paths {
		normalized, pattern, err := endpoint.Format(p)
		if err != nil {
			t.Fatalf("Format(%q) failed: %v", p, err)
		}
		re := regexp.MustCompile(pattern)

		if !re.MatchString(normalized) {
			t.Errorf("pattern %q does not match its own path %q", pattern, normalized)
		}
		for _, other := range []string{
			normalized + "/extra",
			"/prefix" + normalized,
			normalized[:len(normalized)-1],
		} {
			if re.MatchString(other) {
				t.Errorf("pattern %q unexpectedly matches %q", pattern, other)
			}
		}
	}

	// Metacharacters in literal segments must not act as regex operators.
	_, pattern, err := endpoint.Format("/file.json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if regexp.MustCompile(pattern).MatchString("/fileXjson") {
		t.Errorf("pattern %q matches /fileXjson; literal dot not escaped", pattern)
	}
}

func TestFormat_PlaceholderRegex(t *testing.T) {
	normalized, pattern, err := endpoint.Format("items/{a}/{b}")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if normalized != "/items/{a}/{b}" {
		t.Errorf("normalized = %q, want /items/{a}/{b}", normalized)
	}

	re := regexp.MustCompile(pattern)

	tests := []struct {
		path  string
		match bool
	}{
		{"/items/1/2", true},
		{"/items/abc/def", true},
		{"/items/1", false},
		{"/items/1/2/3", false},
		{"/items//2", false},
		{"/other/1/2", false},
	}
	for _, tt := range tests {
		if got := re.MatchString(tt.path); got != tt.match {
			t.Errorf("pattern %q match(%q) = %v, want %v", pattern, tt.path, got, tt.match)
		}
	}

	// Named groups must carry the segment values.
	matches := re.FindStringSubmatch("/items/42/widgets")
	if matches == nil {
		t.Fatal("expected /items/42/widgets to match")
	}
	params := map[string]string{}
	for i, name := range re.SubexpNames() {
		if i > 0 && name != "" && i < len(matches) {
			params[name] = matches[i]
		}
	}
	if params["a"] != "42" || params["b"] != "widgets" {
		t.Errorf("extracted params = %v, want a=42 b=widgets", params)
	}
}

func TestURLParams(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"no params", "/users", []string{}},
		{"single", "/users/{id}", []string{"id"}},
		{"two in order", "/x/{a}/{b}", []string{"a", "b"}},
		{"duplicates collapsed", "/x/{a}/y/{a}/{b}", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := endpoint.URLParams(tt.template)
			if got == nil {
				t.Fatal("URLParams returned nil, want empty slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("URLParams(%q) = %v, want %v", tt.template, got, tt.want)
			}
		})
	}
}
