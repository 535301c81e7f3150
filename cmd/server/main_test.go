package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := map[string]bool{
		"short": true,
		"this-is-a-long-secret-but-change-me-please": true,
		"k3J9x2Lq8Vn4Rt7Yp1Zs6Wd0Hf5Gb2Mc":           false,
	}
	for secret, want := range cases {
		if got := isWeakSecret(secret); got != want {
			t.Fatalf("isWeakSecret(%q) = %v, want %v", secret, got, want)
		}
	}
}
