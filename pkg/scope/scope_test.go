package scope

import (
	"testing"

	"github.com/google/uuid"
)

type ownedRecord struct {
	name     string
	doctorID uuid.UUID
}

func (r ownedRecord) OwnedBy() uuid.UUID { return r.doctorID }

func TestFilter_AdminSeesEverything(t *testing.T) {
	docA := uuid.New()
	docB := uuid.New()
	recs := []ownedRecord{
		{"a1", docA},
		{"b1", docB},
		{"a2", docA},
	}

	got := Filter(Viewer{ID: uuid.New(), Admin: true}, recs)
	if len(got) != 3 {
		t.Fatalf("expected admin to see 3 records, got %d", len(got))
	}
}

func TestFilter_DoctorSeesOwnOnly(t *testing.T) {
	docA := uuid.New()
	docB := uuid.New()
	recs := []ownedRecord{
		{"a1", docA},
		{"b1", docB},
		{"a2", docA},
	}

	got := Filter(Viewer{ID: docA}, recs)
	if len(got) != 2 {
		t.Fatalf("expected doctor to see 2 records, got %d", len(got))
	}
	if got[0].name != "a1" || got[1].name != "a2" {
		t.Errorf("expected input order preserved, got %v", got)
	}
}

func TestFilter_DoctorWithNoRecords(t *testing.T) {
	recs := []ownedRecord{{"a1", uuid.New()}}

	got := Filter(Viewer{ID: uuid.New()}, recs)
	if got == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(Viewer{ID: uuid.New(), Admin: true}, []ownedRecord(nil))
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestVisible(t *testing.T) {
	doc := uuid.New()
	rec := ownedRecord{"a1", doc}

	if !Visible(Viewer{ID: doc}, rec) {
		t.Error("expected owner to see own record")
	}
	if Visible(Viewer{ID: uuid.New()}, rec) {
		t.Error("expected other doctor not to see record")
	}
	if !Visible(Viewer{ID: uuid.New(), Admin: true}, rec) {
		t.Error("expected admin to see record")
	}
}
