package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewFixed(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}
	c.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !c.Now().Equal(want) {
		t.Errorf("after Advance Now() = %v, want %v", c.Now(), want)
	}
	c.AddDays(30)
	if c.Now().Month() != time.March || c.Now().Day() != 31 {
		t.Errorf("after AddDays(30) Now() = %v", c.Now())
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("after Set Now() = %v", c.Now())
	}
}

func TestSystem(t *testing.T) {
	var c Clock = System{}
	before := time.Now()
	got := c.Now()
	if got.Before(before) {
		t.Errorf("System.Now() = %v, before %v", got, before)
	}
}
