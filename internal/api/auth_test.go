package api

import "testing"

func TestUserIDFromAuth(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer aaa.user-1.sig", "user-1"},
		{"Bearer aaa.user-1", "user-1"},
		{"aaa.user-1.sig", "user-1"},
		{"Bearer plain-token", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := userIDFromAuth(tc.header); got != tc.want {
			t.Errorf("userIDFromAuth(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("Bearer abc"); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := bearerToken("abc"); got != "abc" {
		t.Errorf("no prefix should pass through, got %q", got)
	}
}
