// internal/config/validator_test.go

package config

import "testing"

func TestTwoLabelHostRule(t *testing.T) {
	val := Validate()

	for _, good := range []string{"plume.blog", "example.com"} {
		if err := val.Var(good, "two_label_host"); err != nil {
			t.Errorf("%q rejected: %v", good, err)
		}
	}
	for _, bad := range []string{
		"plume",           // single label
		"a.plume.blog",    // three labels
		"plume.blog:8080", // port must be stripped by the caller
		"plume .blog",     // whitespace
		".blog",           // empty label
		"plume.",          // empty label
		"",
	} {
		if err := val.Var(bad, "two_label_host"); err == nil {
			t.Errorf("%q accepted but should fail", bad)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	cfg := &Config{}
	cfg.HTTP.ListenAddr = ":8080"
	cfg.Site.CanonicalHost = "plume.blog"
	cfg.Database.GlobalDSN = "plume:pw@tcp(localhost:3306)/plume"
	cfg.Content.SnapshotRetention = 250

	if err := validateStruct(cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.Site.CanonicalHost = "blog.plume.example"
	if err := validateStruct(cfg); err == nil {
		t.Fatal("three-label canonical host accepted")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{
		GlobalDSN:      "plume:{password}@tcp(localhost:3306)/plume",
		GlobalPassword: "s3cret",
	}
	want := "plume:s3cret@tcp(localhost:3306)/plume"
	if got := d.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}

	// No placeholder: template passes through untouched.
	d = Database{GlobalDSN: "plume:inline@tcp(localhost)/plume"}
	if got := d.DSN(); got != d.GlobalDSN {
		t.Fatalf("DSN() mangled a placeholder-free template: %q", got)
	}
}
