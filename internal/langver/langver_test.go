package langver

import (
	"strings"
	"testing"
)

func TestSupportedOrder(t *testing.T) {
	got := Supported()
	want := []Version{"1.0", "1.1", "1.2"}
	if len(got) != len(want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Supported()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Latest() != V1_2 {
		t.Errorf("Latest() = %q, want %q", Latest(), V1_2)
	}
}

func TestCompatibleMatrix(t *testing.T) {
	for _, v := range Supported() {
		if !Compatible(v, v) {
			t.Errorf("Compatible(%s, %s) = false, want reflexive true", v, v)
		}
	}
	if !Compatible(V1_2, V1_0) {
		t.Error("newer checker must accept older documents")
	}
	if Compatible(V1_0, V1_2) {
		t.Error("older checker must reject newer documents")
	}
	if Compatible(V1_1, "9.9") || Compatible("9.9", V1_1) {
		t.Error("unknown versions are never compatible")
	}
}

func TestExtractDirective(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Version
		ok   bool
	}{
		{"plain", "@version \"1.1\"\ndomain X {}", "1.1", true},
		{"after comment", "// header\n\n@version \"1.0\"\ndomain X {}", "1.0", true},
		{"absent", "domain X {}", "", false},
		{"after domain ignored", "domain X {\n@version \"1.2\"\n}", "", false},
		{"malformed", "@version 1.1\ndomain X {}", "", false},
		{"empty input", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ExtractDirective(tt.src)
			if v != tt.want || ok != tt.ok {
				t.Errorf("ExtractDirective = (%q, %v), want (%q, %v)", v, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMigrateChain(t *testing.T) {
	src := "domain Shop {\n  version: \"1.0\"\n  enum Status { Open, Closed, }\n}"
	out, applied, err := Migrate(src, V1_0, V1_2)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !strings.HasPrefix(out, "@version \"1.2\"\n") {
		t.Errorf("migrated text missing updated directive:\n%s", out)
	}
	if strings.Contains(out, "Closed,") {
		t.Errorf("trailing comma survived migration:\n%s", out)
	}
	wantRules := []string{"insert-version-directive", "strip-trailing-commas", "update-version-directive"}
	if len(applied) != len(wantRules) {
		t.Fatalf("applied = %v, want %v", applied, wantRules)
	}
	for i := range wantRules {
		if applied[i] != wantRules[i] {
			t.Errorf("applied[%d] = %q, want %q", i, applied[i], wantRules[i])
		}
	}
}

func TestMigrateNoop(t *testing.T) {
	src := "@version \"1.1\"\ndomain X {}"
	out, applied, err := Migrate(src, V1_1, V1_1)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if out != src || len(applied) != 0 {
		t.Errorf("same-version migration changed text or applied rules: %v", applied)
	}
}

func TestMigrateRejectsDowngrade(t *testing.T) {
	if _, _, err := Migrate("domain X {}", V1_2, V1_0); err == nil {
		t.Error("expected error migrating backwards")
	}
	if _, _, err := Migrate("domain X {}", "0.9", V1_2); err == nil {
		t.Error("expected error for unknown source version")
	}
}
