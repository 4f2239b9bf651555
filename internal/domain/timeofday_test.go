package domain

import "testing"

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:45", "12:45 AM"},
		{"09:05", "09:05 AM"},
		{"9:30", "09:30 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "01:05 PM"},
		{"23:59", "11:59 PM"},
		{"24:00", "24:00"},
		{"12:60", "12:60"},
		{"noon", "noon"},
		{"-0:30", "-0:30"},
		{"+9:00", "+9:00"},
		{"09:+5", "09:+5"},
	}

	for _, tc := range cases {
		if got := To12Hour(tc.in); got != tc.want {
			t.Fatalf("To12Hour(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTo24Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12:00 AM", "00:00"},
		{"12:30 PM", "12:30"},
		{"01:05 PM", "13:05"},
		{"1:05 pm", "13:05"},
		{"11:59 PM", "23:59"},
		{"09:00 AM", "09:00"},
		{"13:00 PM", FallbackTime24},
		{"00:30 AM", FallbackTime24},
		{"10:00", FallbackTime24},
		{"10:00 XM", FallbackTime24},
		{"", FallbackTime24},
		{"+9:+5 AM", FallbackTime24},
		{"09:-0 PM", FallbackTime24},
		{"+1:00 PM", FallbackTime24},
	}

	for _, tc := range cases {
		if got := To24Hour(tc.in); got != tc.want {
			t.Fatalf("To24Hour(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTripEveryMinute(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		time24 := FormatMinutes(m)
		if got := To24Hour(To12Hour(time24)); got != time24 {
			t.Fatalf("round trip of %q = %q", time24, got)
		}
	}
}

func TestAddMinutesWraps(t *testing.T) {
	cases := []struct {
		in    string
		delta int
		want  string
	}{
		{"09:00", 60, "10:00"},
		{"23:30", 60, "00:30"},
		{"00:15", -30, "23:45"},
		{"10:00", 3 * MinutesPerDay, "10:00"},
		{"garbage", 30, "09:30"},
	}

	for _, tc := range cases {
		if got := AddMinutes(tc.in, tc.delta); got != tc.want {
			t.Fatalf("AddMinutes(%q, %d) = %q, want %q", tc.in, tc.delta, got, tc.want)
		}
	}
}

func TestMinutesOf12HourDegradesToFallback(t *testing.T) {
	if got := MinutesOf12Hour("02:30 PM"); got != 14*60+30 {
		t.Fatalf("MinutesOf12Hour(02:30 PM) = %d, want %d", got, 14*60+30)
	}
	if got := MinutesOf12Hour("whenever"); got != 9*60 {
		t.Fatalf("MinutesOf12Hour(whenever) = %d, want %d", got, 9*60)
	}
}

func TestMinutesOf24HourRejectsSigns(t *testing.T) {
	for _, in := range []string{"+9:00", "-0:30", "09:+5", "9:-0", " :30", "1a:00"} {
		if _, ok := MinutesOf24Hour(in); ok {
			t.Fatalf("MinutesOf24Hour(%q) accepted", in)
		}
	}
}
