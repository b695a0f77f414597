package config

import (
	"reflect"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantPanic bool
	}{
		{name: "variable set", key: "TEST_VAR", value: "test_value"},
		{name: "variable not set", key: "TEST_VAR_MISSING", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", value: "42", def: 1, expected: 42},
		{name: "invalid integer uses default", value: "nope", def: 7, expected: 7},
		{name: "missing variable uses default", value: "", def: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getenvInt("TEST_INT", tt.def); got != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"http://a.test", []string{"http://a.test"}},
		{` "http://a.test" , 'http://b.test',, `, []string{"http://a.test", "http://b.test"}},
	}

	for _, tt := range tests {
		if got := splitAndTrim(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := map[string]string{
		"/api":   "/api",
		"api/":   "/api",
		"/v1/x/": "/v1/x",
		"/":      "",
		"":       "",
	}

	for in, want := range tests {
		if got := normalizePrefix(in); got != want {
			t.Errorf("normalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STATUSPAGE_STORE", "memory")

	cfg := Load()

	if cfg.ListenPort != ":3001" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.APIPrefix != "/api" {
		t.Errorf("APIPrefix = %q", cfg.APIPrefix)
	}
	if cfg.AdminUser != "admin" || cfg.AdminPass != "password" {
		t.Errorf("unexpected admin defaults %q/%q", cfg.AdminUser, cfg.AdminPass)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if !cfg.DefaultSecret() {
		t.Errorf("expected default secret to be reported")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("CORSOrigins = %#v", cfg.CORSOrigins)
	}
	if cfg.LoginBurst != 0 {
		t.Errorf("LoginBurst = %d, login throttling must be off unless configured", cfg.LoginBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STATUSPAGE_STORE", "Redis")
	t.Setenv("STATUSPAGE_REDIS_ADDR", "redis:6379")
	t.Setenv("STATUSPAGE_JWT_SECRET", "s3cret")
	t.Setenv("STATUSPAGE_TOKEN_TTL", "30m")
	t.Setenv("STATUSPAGE_API_PREFIX", "v1/")
	t.Setenv("STATUSPAGE_ALLOWED_CIDRS", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("STATUSPAGE_LOGIN_BURST", "3")

	cfg := Load()

	if cfg.Store != StoreRedis || cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected store config %q %q", cfg.Store, cfg.RedisAddr)
	}
	if cfg.DefaultSecret() {
		t.Errorf("custom secret reported as default")
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.APIPrefix != "/v1" {
		t.Errorf("APIPrefix = %q", cfg.APIPrefix)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %#v", cfg.AllowedCIDRS)
	}
	if cfg.LoginBurst != 3 || cfg.LoginPerMinute != 5 {
		t.Errorf("login throttle = %d/%d", cfg.LoginBurst, cfg.LoginPerMinute)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "redis without address", env: map[string]string{"STATUSPAGE_STORE": "redis"}},
		{name: "unknown store", env: map[string]string{"STATUSPAGE_STORE": "postgres"}},
		{name: "negative ttl", env: map[string]string{"STATUSPAGE_STORE": "memory", "STATUSPAGE_TOKEN_TTL": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STATUSPAGE_REDIS_ADDR", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{AdminPass: "pw", JWTSecret: "key", RedisPassword: ""}
	r := cfg.Redacted()

	if r.AdminPass == "pw" || r.JWTSecret == "key" {
		t.Errorf("secrets leaked: %+v", r)
	}
	if r.RedisPassword != "" {
		t.Errorf("empty values should stay empty")
	}
	if cfg.AdminPass != "pw" {
		t.Errorf("original config mutated")
	}
}
