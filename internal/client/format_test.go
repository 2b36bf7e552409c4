package client

import "testing"

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0ms"},
		{999, "999ms"},
		{1000, "1.00s"},
		{1500, "1.50s"},
		{59999, "60.00s"},
		{60000, "1m 0s"},
		{61000, "1m 1s"},
		{125000, "2m 5s"},
		{125499, "2m 5s"},
		{125500, "2m 6s"},
	}
	for _, c := range cases {
		if got := FormatElapsed(c.ms); got != c.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}
