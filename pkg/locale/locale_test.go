package locale

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCatalog(t *testing.T, root, locale, content string) {
	t.Helper()
	dir := filepath.Join(root, locale, "LC_MESSAGES")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, Domain+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTranslates(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, "de", "\"Open In %s\": \"Öffnen in %s\"\n")

	tr := Load(Domain, []string{root}, "de_DE.UTF-8")

	if got := tr.T("Open In %s"); got != "Öffnen in %s" {
		t.Errorf("T = %q", got)
	}
	if got := tr.Sprintf("Open In %s", "Konsole"); got != "Öffnen in Konsole" {
		t.Errorf("Sprintf = %q", got)
	}
	// Untranslated ids pass through.
	if got := tr.T("Open Remote %s"); got != "Open Remote %s" {
		t.Errorf("missing id  = %q, want passthrough", got)
	}
}

func TestLoadPrefersExactLocale(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, "de", "\"Open In %s\": \"generic\"\n")
	writeCatalog(t, root, "de_DE", "\"Open In %s\": \"exact\"\n")

	tr := Load(Domain, []string{root}, "de_DE.UTF-8")
	if got := tr.T("Open In %s"); got != "exact" {
		t.Errorf("T = %q, want exact", got)
	}
}

func TestLoadFirstRootWins(t *testing.T) {
	userRoot := t.TempDir()
	systemRoot := t.TempDir()
	writeCatalog(t, userRoot, "fr", "\"Open In %s\": \"user\"\n")
	writeCatalog(t, systemRoot, "fr", "\"Open In %s\": \"system\"\n")

	tr := Load(Domain, []string{userRoot, systemRoot}, "fr")
	if got := tr.T("Open In %s"); got != "user" {
		t.Errorf("T = %q, want user", got)
	}
}

func TestLoadFallsThroughRoots(t *testing.T) {
	emptyRoot := t.TempDir()
	systemRoot := t.TempDir()
	writeCatalog(t, systemRoot, "fr", "\"Open In %s\": \"system\"\n")

	tr := Load(Domain, []string{emptyRoot, systemRoot}, "fr")
	if got := tr.T("Open In %s"); got != "system" {
		t.Errorf("T = %q, want system", got)
	}
}

func TestLoadWithoutCatalogIsIdentity(t *testing.T) {
	tr := Load(Domain, []string{t.TempDir()}, "de")
	if got := tr.T("Open In %s"); got != "Open In %s" {
		t.Errorf("T = %q, want passthrough", got)
	}
}

func TestLoadSkipsMalformedCatalog(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, "de_DE", "{not yaml\n")
	writeCatalog(t, root, "de", "\"Open In %s\": \"fallback\"\n")

	tr := Load(Domain, []string{root}, "de_DE")
	if got := tr.T("Open In %s"); got != "fallback" {
		t.Errorf("T = %q, want fallback", got)
	}
}

func TestNilTranslatorIsIdentity(t *testing.T) {
	var tr *Translator
	if got := tr.T("Open In %s"); got != "Open In %s" {
		t.Errorf("T = %q, want passthrough", got)
	}
	if got := tr.Sprintf("Open In %s", "kitty"); got != "Open In kitty" {
		t.Errorf("Sprintf = %q", got)
	}
}

func TestDetect(t *testing.T) {
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(name, "")
	}
	if got := Detect(); got != "" {
		t.Errorf("Detect = %q with empty environment", got)
	}

	t.Setenv("LANG", "en_US.UTF-8")
	if got := Detect(); got != "en_US.UTF-8" {
		t.Errorf("Detect = %q, want LANG value", got)
	}

	t.Setenv("LC_ALL", "de_DE.UTF-8")
	if got := Detect(); got != "de_DE.UTF-8" {
		t.Errorf("Detect = %q, want LC_ALL to win over LANG", got)
	}

	t.Setenv("LANGUAGE", "fr:de")
	if got := Detect(); got != "fr:de" {
		t.Errorf("Detect = %q, want LANGUAGE to win", got)
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"de_DE.UTF-8", []string{"de_DE.UTF-8", "de_DE", "de"}},
		{"de_DE", []string{"de_DE", "de"}},
		{"de", []string{"de"}},
		{"fr:de", []string{"fr", "de"}},
		{"C", nil},
		{"POSIX", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := candidates(tt.locale); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("candidates(%q) = %v, want %v", tt.locale, got, tt.want)
		}
	}
}
