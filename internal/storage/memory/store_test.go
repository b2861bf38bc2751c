package memory

import (
	"errors"
	"testing"

	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/storage/storagetest"
)

func TestConformance(t *testing.T) {
	storagetest.Run(t, storagetest.Harness{
		New: func(t *testing.T) storage.Provider { return New() },
	})
}

func TestFailureInjection(t *testing.T) {
	boom := errors.New("boom")
	s := New()
	s.MoodsErr = boom
	if _, err := s.LoadMoodEntries(); !errors.Is(err, boom) {
		t.Errorf("LoadMoodEntries() error = %v, want boom", err)
	}
	s.SaveErr = boom
	if err := s.SaveProfile(storagetest.SampleProfile()); !errors.Is(err, boom) {
		t.Errorf("SaveProfile() error = %v, want boom", err)
	}
}
