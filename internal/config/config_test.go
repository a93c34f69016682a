package config

import (
	"reflect"
	"testing"
)

func TestAllowedOrigins(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single", raw: "http://localhost:5173", want: []string{"http://localhost:5173"}},
		{name: "multiple with spaces", raw: "https://a.com, https://b.com", want: []string{"https://a.com", "https://b.com"}},
		{name: "trailing comma", raw: "https://a.com,", want: []string{"https://a.com"}},
		{name: "empty", raw: "", want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tc.raw}
			got := cfg.AllowedOrigins()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("AllowedOrigins() = %#v, want %#v", got, tc.want)
			}
		})
	}
}
