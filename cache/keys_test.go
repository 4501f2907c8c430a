package cache

import "testing"

func TestFileKey(t *testing.T) {
	got := FileKey("octo/hello", "main", "docs/guide.md")
	want := "file:octo/hello:main:docs/guide.md"
	if got != want {
		t.Errorf("FileKey() = %q, want %q", got, want)
	}

	// Distinct branches must never collide
	if FileKey("octo/hello", "main", "a.txt") == FileKey("octo/hello", "dev", "a.txt") {
		t.Error("FileKey should differ across branches")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", FileKey("octo/hello", "main", "a.txt"), false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"newline", "file:a\nb", true},
		{"too long", string(make([]byte, MaxKeyLength+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	if !DefaultPolicy().ShouldCache() {
		t.Error("DefaultPolicy should enable caching")
	}
	if DefaultPolicy().TTL.Minutes() != 5 {
		t.Errorf("DefaultPolicy TTL = %v, want 5m", DefaultPolicy().TTL)
	}
	if NoCachePolicy().ShouldCache() {
		t.Error("NoCachePolicy should disable caching")
	}
}
