package slugutil

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Trade Policy", "trade-policy"},
		{"  Tariffs: 2024 review!  ", "tariffs-2024-review"},
		{"--already--slugged--", "already-slugged"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("trade-policy"); err != nil {
		t.Fatalf("valid slug rejected: %v", err)
	}
	for _, bad := range []string{"", "Trade Policy", "UPPER", "a--b", "-leading"} {
		if err := Validate(bad); err == nil {
			t.Errorf("Validate(%q) should fail", bad)
		}
	}
}
